package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/segyhp/loan-simulator/internal/domain"
	"github.com/segyhp/loan-simulator/internal/repository"
	"github.com/segyhp/loan-simulator/internal/service"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "loanctl",
		Short:         "Evaluate loan applications and price loans offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Offline: no cache, built-in product catalog
	svc := service.NewLoanService(repository.NewStaticProductRepository(), nil, 0, nil, nil)

	root.AddCommand(
		newEvaluateCommand(svc),
		newRateCommand(svc),
		newRulesCommand(svc),
		newProductsCommand(svc),
	)
	return root
}

func newEvaluateCommand(svc *service.LoanService) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Check eligibility for an application read from a JSON file or stdin",
		Example: `  loanctl evaluate --file application.json
  cat application.json | loanctl evaluate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
			}

			var request domain.EligibilityRequest
			if err := domain.DecodeStrict(input, &request); err != nil {
				return fmt.Errorf("invalid application: %w", err)
			}

			result, err := svc.CheckEligibility(cmd.Context(), &request)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "application JSON file, - for stdin")
	return cmd
}

func newRateCommand(svc *service.LoanService) *cobra.Command {
	var (
		amount      string
		term        int
		creditScore int
		loanType    string
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Calculate rate, installment and a repayment preview",
		Example: `  loanctl rate --amount 150000 --term 24 --credit-score 780 --type vehicle_loan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loanAmount, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			result, err := svc.CalculateRate(cmd.Context(), &domain.RateCalculationRequest{
				LoanAmount:  loanAmount,
				LoanTerm:    term,
				CreditScore: creditScore,
				LoanType:    domain.LoanType(loanType),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "loan amount")
	cmd.Flags().IntVar(&term, "term", 0, "loan term in months")
	cmd.Flags().IntVar(&creditScore, "credit-score", 0, "credit score")
	cmd.Flags().StringVar(&loanType, "type", string(domain.LoanTypePersonal), "loan type (personal_loan, vehicle_loan)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("credit-score")
	return cmd
}

func newRulesCommand(svc *service.LoanService) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the validation rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), svc.GetValidationRules(cmd.Context()))
		},
	}
}

func newProductsCommand(svc *service.LoanService) *cobra.Command {
	return &cobra.Command{
		Use:   "products [product-id]",
		Short: "List loan products, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				product, err := svc.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			}

			products, err := svc.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), products)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
