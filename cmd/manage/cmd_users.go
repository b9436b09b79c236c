package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
)

var adminFlags struct {
	username string
	fullName string
	email    string
	password string
}

// manage create-admin --username admin --password secreto
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Crea un usuario administrador",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := usecase.NewUserUseCase(store.Users).Create(cmd.Context(), dto.CreateUserRequest{
			Username: adminFlags.username,
			FullName: adminFlags.fullName,
			Email:    adminFlags.email,
			Password: adminFlags.password,
			Role:     entity.RoleAdmin,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Administrador %q creado (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.username, "username", "admin", "nombre de usuario")
	f.StringVar(&adminFlags.fullName, "full-name", "", "nombre completo")
	f.StringVar(&adminFlags.email, "email", "", "correo")
	f.StringVar(&adminFlags.password, "password", "", "contraseña (mínimo 6 caracteres)")
	_ = createAdminCmd.MarkFlagRequired("password")
}
