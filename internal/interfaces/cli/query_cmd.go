package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "arbol",
		Short: "Muestra el árbol completo con su valor de ventas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			return printTree(out(cmd), uc.Tree())
		},
	}
}

func newSalesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ventas",
		Short: "Valor de ventas total del almacén",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			s := uc.Sales()
			fmt.Fprintf(out(cmd), "Valor de ventas: %s (%s productos, %s marcas)\n",
				money(s.SalesValue), humanize.Comma(int64(s.Products)), humanize.Comma(int64(s.Brands)))
			return nil
		},
	}
}

func newProductsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "productos",
		Short: "Lista todos los productos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			printList(out(cmd), uc.Products())
			return nil
		},
	}
}

func newBrandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "marcas",
		Short: "Lista todas las marcas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			printList(out(cmd), uc.Brands())
			return nil
		},
	}
}

func newPreorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preorden",
		Short: "Recorrido en preorden (--con-productos para incluir productos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			printList(out(cmd), uc.Preorder(nil))
			return nil
		},
	}
}

func newPostorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "posorden",
		Short: "Recorrido en posorden (--con-productos para incluir productos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			printList(out(cmd), uc.Postorder(nil))
			return nil
		},
	}
}

func newFindCmd(app *App) *cobra.Command {
	var prefix bool
	var kind string

	cmd := &cobra.Command{
		Use:   "buscar ID",
		Short: "Busca un nodo por id, o por prefijo de id con --prefijo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			if prefix {
				list, err := uc.SearchPrefix(args[0], kind)
				if err != nil {
					return err
				}
				printList(out(cmd), list)
				return nil
			}
			n := uc.GetNode(args[0])
			if n == nil {
				return fmt.Errorf("%w: nodo %s", domain.ErrNotFound, args[0])
			}
			return printTree(out(cmd), *n)
		},
	}

	cmd.Flags().BoolVar(&prefix, "prefijo", false, "Interpretar ID como prefijo")
	cmd.Flags().StringVar(&kind, "tipo", "", "Filtrar por tipo con --prefijo (Categoria|Marca|Producto)")

	return cmd
}

func newParentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "padre ID",
		Short: "Muestra el padre directo de un nodo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			p := uc.GetParent(args[0])
			if p == nil {
				return fmt.Errorf("%w: %s no existe o es la raíz", domain.ErrNotFound, args[0])
			}
			fmt.Fprintln(out(cmd), label(*p))
			return nil
		},
	}
}
