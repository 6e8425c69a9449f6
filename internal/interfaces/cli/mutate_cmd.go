package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

func newAddCmd(app *App) *cobra.Command {
	var in dto.AddNodeRequest
	var price string

	cmd := &cobra.Command{
		Use:   "agregar",
		Short: "Agrega una categoría, marca o producto y guarda el archivo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("precio") {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("%w: precio %q", domain.ErrInvalidInput, price)
				}
				in.UnitPrice = &p
			}
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			n, err := uc.AddNode(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Agregado %s\n", label(*n))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ParentID, "padre", "", "Id del padre (vacío = raíz)")
	cmd.Flags().StringVar(&in.Kind, "tipo", "", "Categoria|Marca|Producto")
	cmd.Flags().StringVar(&in.ID, "id", "", "Id del nodo (vacío = UUID)")
	cmd.Flags().StringVar(&in.Name, "nombre", "", "Nombre")
	cmd.Flags().StringVar(&in.Description, "descripcion", "", "Descripción del producto")
	cmd.Flags().StringVar(&price, "precio", "", "Precio unitario del producto")
	cmd.Flags().IntVar(&in.UnitsSold, "unidades", 0, "Unidades vendidas del producto")
	_ = cmd.MarkFlagRequired("tipo")
	_ = cmd.MarkFlagRequired("nombre")

	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar ID",
		Short: "Elimina un nodo con todo su subárbol y guarda el archivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			n, err := uc.RemoveNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n == nil {
				return fmt.Errorf("%w: %s no existe o es la raíz", domain.ErrNotFound, args[0])
			}
			fmt.Fprintf(out(cmd), "Eliminado %s\n", label(*n))
			return nil
		},
	}
}

func newSellCmd(app *App) *cobra.Command {
	var units int

	cmd := &cobra.Command{
		Use:   "vender ID",
		Short: "Registra unidades vendidas de un producto y guarda el archivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := app.useCase(cmd.Context())
			if err != nil {
				return err
			}
			n, err := uc.Sell(cmd.Context(), args[0], units)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Vendido %s\n", label(*n))
			return nil
		},
	}

	cmd.Flags().IntVarP(&units, "unidades", "u", 1, "Unidades vendidas")

	return cmd
}
