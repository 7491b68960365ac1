package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/core/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/platform/config"
	"github.com/SscSPs/apartment_fee_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/apartment_fee_app/pkg/client"
	"github.com/SscSPs/apartment_fee_app/pkg/database"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "afa_cli",
		Short:         "Operator tooling for the apartment fee backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(logger), newCreateUserCmd(logger), newCheckPaymentCmd())
	return root
}

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.RollbackMigrations(cfg.DatabaseURL, cfg.MigrationsPath, steps, logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func newCreateUserCmd(logger *slog.Logger) *cobra.Command {
	var (
		req    dto.RegisterRequest
		role   string
		room   int
		active bool
	)
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account directly in the database",
		Long:  "Creates an account without going through the API, e.g. the first admin of a fresh installation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(pool)

			req.Role = domain.UserRole(role)
			if room > 0 {
				req.RoomNumber = &room
			}
			status := domain.StatusInactive
			if active {
				status = domain.StatusActive
			}

			userSvc := services.NewUserService(pgsql.NewRepositoryProvider(pool, cfg.SettlementMaxRetries))
			user, err := userSvc.CreateUser(ctx, req, status)
			if err != nil {
				return err
			}
			logger.Info("User created", slog.Int64("user_id", user.ID), slog.String("role", string(user.Role)), slog.String("status", string(user.Status)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Username, "username", "", "login name")
	f.StringVar(&req.Password, "password", "", "initial password")
	f.StringVar(&req.Name, "name", "", "display name")
	f.StringVar(&req.Email, "email", "", "e-mail address")
	f.StringVar(&req.Phone, "phone", "", "phone number")
	f.StringVar(&role, "role", string(domain.RoleTenant), "admin, manager or tenant")
	f.IntVar(&room, "room", 0, "room number to bind a tenant to")
	f.BoolVar(&active, "active", false, "create the account already activated")
	for _, name := range []string{"username", "password", "name", "email"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newCheckPaymentCmd() *cobra.Command {
	var server, username, password string
	cmd := &cobra.Command{
		Use:   "check-payment <assignment-id>",
		Short: "Ask the API whether a payment code has been paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || assignmentID <= 0 {
				return fmt.Errorf("invalid assignment id %q", args[0])
			}

			c := client.New(server)
			if _, err := c.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			status, err := c.PaymentStatus(cmd.Context(), assignmentID)
			if errors.Is(err, client.ErrNotPaid) {
				fmt.Fprintf(cmd.OutOrStdout(), "assignment %d: not paid\n", assignmentID)
				return nil
			}
			if err != nil {
				return err
			}
			paidAt := "unknown date"
			if status.PaymentDate != nil {
				paidAt = status.PaymentDate.Format(time.RFC3339)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assignment %d: paid at %s\n", assignmentID, paidAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
