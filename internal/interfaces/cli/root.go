// Package cli expone el catálogo del almacén en la línea de comandos.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	appcatalog "github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/file"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xmlexport"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Defaults valores iniciales de las banderas globales (vienen de la configuración).
type Defaults struct {
	Path              string
	Encoding          string
	TraversalProducts bool
}

// App estado compartido por los comandos.
type App struct {
	Log *logger.Logger

	path         string
	encoding     string
	withProducts bool
}

// NewRootCmd crea el comando "almacen" con todos sus subcomandos.
func NewRootCmd(app *App, def Defaults) *cobra.Command {
	if app.Log == nil {
		app.Log = logger.Nop()
	}
	root := &cobra.Command{
		Use:           "almacen",
		Short:         "Catálogo jerárquico de categorías, marcas y productos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&app.path, "archivo", "a", def.Path, "Archivo de catálogo")
	pf.StringVar(&app.encoding, "codificacion", def.Encoding, "Codificación del archivo (utf-8|iso-8859-1)")
	pf.BoolVar(&app.withProducts, "con-productos", def.TraversalProducts, "Incluir productos en preorden/posorden")

	root.AddCommand(
		newTreeCmd(app),
		newSalesCmd(app),
		newProductsCmd(app),
		newBrandsCmd(app),
		newPreorderCmd(app),
		newPostorderCmd(app),
		newFindCmd(app),
		newParentCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newSellCmd(app),
		newExportCmd(app),
		newReportCmd(app),
		newValidateCmd(app),
	)

	return root
}

// repository repositorio de archivo según las banderas globales.
func (a *App) repository() (*file.CatalogRepo, error) {
	return file.NewCatalogRepository(a.path, a.encoding)
}

// useCase abre el catálogo del archivo; las mutaciones se guardan en el mismo archivo.
func (a *App) useCase(ctx context.Context) (*appcatalog.CatalogUseCase, error) {
	repo, err := a.repository()
	if err != nil {
		return nil, err
	}
	uc, err := appcatalog.OpenCatalogUseCase(ctx, repo, pdf.NewMarotoSalesReport(), xmlexport.NewExporter(2), a.Log,
		appcatalog.Config{TraversalProducts: a.withProducts})
	if err != nil {
		return nil, err
	}
	a.Log.Debug().Str("archivo", a.path).Msg("catálogo abierto")
	return uc, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
