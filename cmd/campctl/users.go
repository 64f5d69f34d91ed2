package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Gestión del registro de usuarios",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista los usuarios registrados",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNOMBRE\tDEPARTAMENTO\tROL")
		for _, u := range e.registry.Snapshot() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Email, u.Name, u.Department.Label(), u.Role.Label())
		}
		return w.Flush()
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <email> <ADMIN|USER>",
	Short: "Cambia el rol de un usuario (operación de administrador)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, ok := entity.ParseRole(args[1])
		if !ok {
			return fmt.Errorf("rol no válido: %s", args[1])
		}
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		// la CLI actúa con privilegios de administrador
		u, err := e.registry.SetRole(cmd.Context(), entity.RoleAdmin, args[0], role)
		if err != nil && !domain.IsPersistWarning(err) {
			return err
		}
		if err != nil {
			e.log.Warn().Err(err).Msg("rol cambiado pero no guardado")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ahora es %s\n", u.Email, u.Role.Label())
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersSetRoleCmd)
}
