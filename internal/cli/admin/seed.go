package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/repository"
	"github.com/crestline-labs/supportdesk/internal/service"
)

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <company-name>",
		Short: "Seed demo catalog data",
		Long:  "Populate an existing company with a small demo catalog of products, services, FAQs, and policies",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	companyRepo := repository.NewCompanyRepository(pool)
	company, err := companyRepo.GetByName(ctx, domain.NormalizeCompanyName(args[0]))
	if err != nil {
		return fmt.Errorf("failed to look up company: %w", err)
	}

	catalogSvc := service.NewCatalogService(
		repository.NewProductRepository(pool),
		repository.NewServiceRepository(pool),
		repository.NewFAQRepository(pool),
		repository.NewPolicyRepository(pool),
		repository.NewEmbeddingJobRepository(pool),
	)

	products := []service.ProductInput{
		{Name: "SuperWidget", Description: "An amazing widget that does everything you need.", PriceCents: 9999},
		{Name: "MegaGadget", Description: "The latest and greatest gadget on the market.", PriceCents: 19999},
	}
	for _, p := range products {
		if _, err := catalogSvc.CreateProduct(ctx, company.ID, p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	services := []service.ServiceInput{
		{Name: "Premium Support Plan", Description: "24/7 premium support for all your needs.", PriceCents: 4999, Period: "monthly"},
	}
	for _, s := range services {
		if _, err := catalogSvc.CreateService(ctx, company.ID, s); err != nil {
			return fmt.Errorf("failed to seed service %q: %w", s.Name, err)
		}
	}

	faqs := []service.FAQInput{
		{Question: "What are your business hours?", Answer: "We are open 9 AM to 5 PM, Monday to Friday."},
		{Question: "How can I reset my password?", Answer: "You can reset your password by clicking the 'Forgot Password' link on the login page."},
		{Question: "How can I contact support?", Answer: "You can contact support via email at support@example.com or by calling us at 1-800-EXAMPLE."},
	}
	for _, f := range faqs {
		if _, err := catalogSvc.CreateFAQ(ctx, company.ID, f); err != nil {
			return fmt.Errorf("failed to seed FAQ %q: %w", f.Question, err)
		}
	}

	policies := []service.PolicyInput{
		{Title: "Return Policy", Content: "Items can be returned within 30 days of purchase for a full refund."},
		{Title: "Privacy Policy", Content: "We respect your privacy and never share your data with third parties."},
	}
	for _, p := range policies {
		if _, err := catalogSvc.CreatePolicy(ctx, company.ID, p); err != nil {
			return fmt.Errorf("failed to seed policy %q: %w", p.Title, err)
		}
	}

	fmt.Printf("Seeded demo catalog for company %s (%s)\n", company.Name, company.ID)
	return nil
}
