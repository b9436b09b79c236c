package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/storage"
)

type demoProduct struct {
	name  string
	stock int
	price string
}

var demoProducts = []demoProduct{
	{name: "Widget", stock: 10, price: "2.50"},
	{name: "Gadget", stock: 5, price: "12.00"},
	{name: "Tornillo 1/4", stock: 200, price: "0.15"},
}

// manage seed-demo
var seedDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Carga datos de ejemplo (categoría, cliente y productos). Se puede correr varias veces",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return seedDemo(cmd.Context(), store, cmd.OutOrStdout())
	},
}

func seedDemo(ctx context.Context, store *storage.Storage, out io.Writer) error {
	categoryID, err := seedCategory(ctx, usecase.NewCategoryUseCase(store.Categories), "General")
	if err != nil {
		return err
	}

	_, err = usecase.NewClientUseCase(store.Clients).Create(ctx, dto.ClientRequest{FullName: "Acme"})
	if err := skipDuplicate(out, "cliente Acme", err); err != nil {
		return err
	}

	products := usecase.NewProductUseCase(store.Products, store.Categories)
	for _, p := range demoProducts {
		stock := p.stock
		price := decimal.RequireFromString(p.price)
		_, err := products.Create(ctx, dto.ProductRequest{
			Name:       p.name,
			CategoryID: categoryID,
			Stock:      &stock,
			Price:      &price,
		})
		if err := skipDuplicate(out, "producto "+p.name, err); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Datos de ejemplo listos")
	return nil
}

func seedCategory(ctx context.Context, uc *usecase.CategoryUseCase, name string) (string, error) {
	created, err := uc.Create(ctx, dto.CategoryRequest{Name: name})
	if err == nil {
		return created.ID, nil
	}
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) {
		return "", err
	}
	list, err := uc.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range list {
		if domain.NameKey(c.Name) == domain.NameKey(name) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("categoría %q duplicada pero no encontrada", name)
}

func skipDuplicate(out io.Writer, what string, err error) error {
	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		fmt.Fprintf(out, "%s ya existe, se omite\n", what)
		return nil
	}
	return err
}
