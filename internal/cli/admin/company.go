package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/crestline-labs/supportdesk/internal/config"
	"github.com/crestline-labs/supportdesk/internal/database"
	"github.com/crestline-labs/supportdesk/internal/repository"
	"github.com/crestline-labs/supportdesk/internal/service"
)

func CompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
		Long:  "Register companies and their users",
	}

	cmd.AddCommand(CompanyCreateCmd())
	cmd.AddCommand(UserCreateCmd())

	return cmd
}

func CompanyCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name> <email> <password>",
		Short: "Register a new company",
		Long:  "Register a new company tenant with the given name, contact email, and password",
		Args:  cobra.ExactArgs(3),
		RunE:  runCompanyCreate,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runCompanyCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, authSvc, err := getAuthService(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	company, err := authSvc.RegisterCompany(ctx, service.RegisterCompanyInput{
		Name:     args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return fmt.Errorf("failed to register company: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":         company.ID,
			"name":       company.Name,
			"email":      company.Email,
			"created_at": company.CreatedAt,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Company registered: %s (%s)\n", company.Name, company.ID)
	}

	return nil
}

func UserCreateCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add-user <company-name> <handle> <email> <password>",
		Short: "Add a user to a company",
		Long:  "Register a user under an existing company with the given handle, email, and password",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return runUserCreate(args, role, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().StringVarP(&role, "role", "r", "customer", "User role (admin, agent, or customer)")

	return cmd
}

func runUserCreate(args []string, role, outputFormat string) error {
	ctx := context.Background()

	pool, authSvc, err := getAuthService(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	user, err := authSvc.RegisterUser(ctx, service.RegisterUserInput{
		CompanyName: args[0],
		Handle:      args[1],
		Email:       args[2],
		Password:    args[3],
		Role:        role,
	})
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	if outputFormat == "json" {
		data := map[string]interface{}{
			"id":         user.ID,
			"handle":     user.Handle,
			"email":      user.Email,
			"company_id": user.CompanyID,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		}
		jsonBytes, _ := json.MarshalIndent(data, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("User registered: %s (%s, role %s)\n", user.Handle, user.ID, user.Role)
	}

	return nil
}

func getDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}

func getAuthService(ctx context.Context) (*pgxpool.Pool, *service.AuthService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := getDBPool(ctx)
	if err != nil {
		return nil, nil, err
	}

	companyRepo := repository.NewCompanyRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	return pool, service.NewAuthService(companyRepo, userRepo, cfg.JWTSecret, cfg.TokenTTL), nil
}
