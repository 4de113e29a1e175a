package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/hapkiduki/shipping-go/internal/application/dto"
	"github.com/hapkiduki/shipping-go/internal/application/service"
	"github.com/hapkiduki/shipping-go/internal/domain/entity"
	"github.com/hapkiduki/shipping-go/internal/domain/valueobject"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/carrier"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/config"
	"github.com/hapkiduki/shipping-go/internal/infrastructure/logging"
	"github.com/hapkiduki/shipping-go/pkg/logger"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// cliOptions holds the flags shared by every subcommand.
type cliOptions struct {
	configFile     string
	weight         float64
	value          float64
	origin         string
	destination    string
	carrier        string
	trackingNumber string
	asJSON         bool
	verbose        bool
}

func (o *cliOptions) request() dto.ShipmentRequest {
	return dto.ShipmentRequest{
		Weight:      o.weight,
		Value:       o.value,
		Origin:      o.origin,
		Destination: o.destination,
		Carrier:     o.carrier,
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "shippingctl",
		Short:         "Quote, create and track shipments across carriers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	shipmentFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&opts.weight, "weight", 0, "package weight in kg")
		cmd.Flags().Float64Var(&opts.value, "value", 0, "declared value")
		cmd.Flags().StringVar(&opts.origin, "origin", "", "origin location")
		cmd.Flags().StringVar(&opts.destination, "destination", "", "destination location")
		_ = cmd.MarkFlagRequired("weight")
	}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote every configured carrier, cheapest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(opts)
			if err != nil {
				return err
			}
			details, err := detailsFrom(opts.request())
			if err != nil {
				return err
			}
			result := svc.QuoteAll(cmd.Context(), details)
			resp := dto.NewQuotesResponse(result.Quotes, result.Failed, svc.RecommendCarrier(details))
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CARRIER\tPRICE\tDAYS\tSERVICE")
			for _, q := range resp.Quotes {
				fmt.Fprintf(tw, "%s\t%.2f\t%d\t%s\n", q.Carrier, q.Price, q.EstimatedDays, q.Service)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, c := range resp.FailedCarriers {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s did not quote\n", c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recommended: %s\n", resp.Recommended)
			return nil
		},
	}
	shipmentFlags(quoteCmd)

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show the carrier the selection policy prefers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(opts)
			if err != nil {
				return err
			}
			details, err := detailsFrom(opts.request())
			if err != nil {
				return err
			}
			recommended := svc.RecommendCarrier(details)
			resp := dto.RecommendationResponse{
				Carrier:    string(recommended),
				Registered: lo.Contains(svc.Carriers(), recommended),
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Carrier)
			return nil
		},
	}
	recommendCmd.Flags().Float64Var(&opts.weight, "weight", 0, "package weight in kg")
	recommendCmd.Flags().Float64Var(&opts.value, "value", 0, "declared value")
	_ = recommendCmd.MarkFlagRequired("weight")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a shipment and print its label",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(opts)
			if err != nil {
				return err
			}
			req := opts.request()
			details, err := detailsFrom(req)
			if err != nil {
				return err
			}
			c, err := req.CarrierOverride()
			if err != nil {
				return err
			}
			label, err := svc.CreateShipment(cmd.Context(), details, c)
			if err != nil {
				return err
			}
			resp := dto.NewShipmentResponse(label)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "carrier:  %s\ntracking: %s\nlabel:    %s\n",
				resp.Carrier, resp.TrackingNumber, resp.LabelURL)
			return nil
		},
	}
	shipmentFlags(createCmd)
	createCmd.Flags().StringVar(&opts.carrier, "carrier", "", "force a carrier (envia, welivery, correo)")

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Show tracking events of a shipment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(opts)
			if err != nil {
				return err
			}
			c, err := valueobject.ParseCarrier(opts.carrier)
			if err != nil {
				return err
			}
			info, err := svc.TrackShipment(cmd.Context(), c, opts.trackingNumber)
			if err != nil {
				return err
			}
			resp := dto.NewTrackingResponse(info)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", resp.Carrier, resp.TrackingNumber, resp.Status)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range resp.Events {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp, e.Location, e.Status)
			}
			return tw.Flush()
		},
	}
	trackCmd.Flags().StringVar(&opts.carrier, "carrier", "", "carrier that issued the tracking number")
	trackCmd.Flags().StringVar(&opts.trackingNumber, "tracking-number", "", "tracking number")
	_ = trackCmd.MarkFlagRequired("carrier")
	_ = trackCmd.MarkFlagRequired("tracking-number")

	root.AddCommand(quoteCmd, recommendCmd, createCmd, trackCmd)
	return root
}

// buildService loads the configuration and registers the enabled carriers.
func buildService(opts *cliOptions) (*service.ShippingService, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	base := logger.NewNop()
	if opts.verbose {
		base, err = logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: os.Stderr})
		if err != nil {
			return nil, err
		}
	}
	log := logging.New(base.Named("shippingctl"))

	svc := service.NewShippingService(log, service.Options{
		QuoteTimeout:        cfg.Shipping.QuoteTimeout,
		MaxConcurrentQuotes: cfg.Shipping.MaxConcurrentQuotes,
	})
	if _, err := carrier.RegisterConfigured(svc, cfg.Carriers.Settings(), log); err != nil {
		return nil, err
	}
	return svc, nil
}

func detailsFrom(req dto.ShipmentRequest) (entity.ShipmentDetails, error) {
	d, verrs := req.ToDetails()
	if verrs != nil {
		return d, fmt.Errorf("invalid %s: %s", verrs[0].Field, verrs[0].Message)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
