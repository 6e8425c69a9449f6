package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/file"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xmlexport"
)

// Formatos de exportación.
const (
	formatTXT  = "txt"
	formatJSON = "json"
	formatYAML = "yaml"
	formatXML  = "xml"
)

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Exporta el catálogo (txt|json|yaml|xml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch strings.ToLower(format) {
			case formatTXT:
				enc, err := file.ParseEncoding(app.encoding)
				if err != nil {
					return err
				}
				if err := file.Encode(&buf, uc.Snapshot(), enc); err != nil {
					return err
				}
			case formatJSON:
				e := json.NewEncoder(&buf)
				e.SetIndent("", "  ")
				if err := e.Encode(uc.Tree()); err != nil {
					return err
				}
			case formatYAML:
				e := yaml.NewEncoder(&buf)
				e.SetIndent(2)
				if err := e.Encode(uc.Tree()); err != nil {
					return err
				}
				if err := e.Close(); err != nil {
					return err
				}
			case formatXML:
				doc, digest, err := uc.Export()
				if err != nil {
					return err
				}
				buf.Write(doc)
				app.Log.Info().Str("sha256", digest).Msg("huella del documento XML")
			default:
				return fmt.Errorf("%w: formato %q (txt|json|yaml|xml)", domain.ErrInvalidInput, format)
			}
			return writeOutput(cmd, output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&format, "formato", "f", formatTXT, "Formato: txt|json|yaml|xml")
	cmd.Flags().StringVarP(&output, "salida", "o", "", "Archivo de salida (vacío = salida estándar)")

	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reporte",
		Short: "Genera el reporte de ventas en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := uc.SalesReport(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, doc); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Reporte escrito en %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "salida", "o", "ventas.pdf", "Archivo PDF de salida (vacío = salida estándar)")

	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validar [ARCHIVO]",
		Short: "Valida un archivo de catálogo (.txt o .xml) sin modificarlo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.path
			if len(args) == 1 {
				path = args[0]
			}
			root, err := loadAny(path, app.encoding)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "OK %s: %d nodos, %d marcas, %d productos, ventas %s\n",
				path, root.Count(), len(root.Brands()), len(root.Products()), money(root.SalesValue()))
			return nil
		},
	}
}

// loadAny lee un catálogo de líneas o un documento XML según la extensión.
func loadAny(path, encoding string) (*catalog.Category, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return xmlexport.Parse(data)
	}
	enc, err := file.ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := file.Decode(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err := out(cmd).Write(data)
	return err
}
