package cli

import (
	"github.com/spf13/cobra"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
)

func newIndexCmd(app *App) *cobra.Command {
	var (
		limit   int64
		after   string
		before  string
		mandate string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "List subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var params api.IndexParams
			if cmd.Flags().Changed("limit") {
				params.Limit = api.Int64(limit)
			}
			if after != "" {
				params.After = api.String(after)
			}
			if before != "" {
				params.Before = api.String(before)
			}
			if mandate != "" {
				params.Mandate = api.String(mandate)
			}

			res, err := app.Plans.Index(cmd.Context(), &params)
			if err != nil {
				return err
			}
			return app.print(res)
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", 0, "Number of records to return")
	cmd.Flags().StringVar(&after, "after", "", "Cursor pointing to the start of the page")
	cmd.Flags().StringVar(&before, "before", "", "Cursor pointing to the end of the page")
	cmd.Flags().StringVar(&mandate, "mandate", "", "Filter by mandate ID")
	return cmd
}

func newFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find ID",
		Short: "Show a single subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return api.ErrEmptyID
			}
			res, err := app.Plans.Find(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return app.print(res)
		},
	}
}

func newCreateCmd(app *App) *cobra.Command {
	var (
		plan         api.Plan
		intervalUnit string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subscription against a mandate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan.IntervalUnit = api.PlanInterval(intervalUnit)
			if err := plan.IntervalUnit.Validate(); err != nil {
				return err
			}

			res, err := app.Plans.Create(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return app.print(res)
		},
	}

	cmd.Flags().Int64Var(&plan.Amount, "amount", 0, "Amount in the lowest denomination of the currency")
	cmd.Flags().StringVar(&plan.Currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&plan.Name, "name", "", "Name shown on customer notifications")
	cmd.Flags().StringVar(&intervalUnit, "interval-unit", "", "One of weekly, monthly or yearly")
	cmd.Flags().IntVar(&plan.Count, "count", 0, "Total number of payments")
	cmd.Flags().StringVar(&plan.MandateID, "mandate", "", "Mandate ID")
	cmd.Flags().StringVar(&plan.Month, "month", "", "Month to charge, yearly plans only")
	cmd.Flags().StringVar(&plan.DayOfMonth, "day-of-month", "", "Day of the month to charge, -1 for the last day")
	cmd.Flags().StringVar(&plan.StartDate, "start-date", "", "Date of the first payment, YYYY-MM-DD")
	metadataFlag(cmd.Flags(), &plan.Metadata)

	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("interval-unit")
	_ = cmd.MarkFlagRequired("mandate")
	return cmd
}

func newCancelCmd(app *App) *cobra.Command {
	var metadata map[string]string

	cmd := &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return api.ErrEmptyID
			}
			var data *api.CancelRequest
			if cmd.Flags().Changed("metadata") {
				data = &api.CancelRequest{Metadata: metadata}
			}

			res, err := app.Plans.Cancel(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			return app.print(res)
		},
	}

	metadataFlag(cmd.Flags(), &metadata)
	return cmd
}
