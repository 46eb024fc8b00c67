package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/app"
	"github.com/worldofchami/shopify-mcp/pkg/config"
	"github.com/worldofchami/shopify-mcp/pkg/telemetry"
)

// CLI for calling the shop tools without MCP.
//
// Examples:
//
//	go run ./cmd/shop-cli list-products --limit 3
//	go run ./cmd/shop-cli create-cart --variant-id gid://shopify/ProductVariant/123
//	go run ./cmd/shop-cli graphql --query '{ shop { name } }'
//
// With --json, output is shaped like an MCP tool result: {"content":[...]}
func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type ToolResponse struct {
	Content []ContentItem `json:"content"`
}

type cliOptions struct {
	envFile  string
	logLevel string
	asJSON   bool
	timeout  time.Duration
}

type cli struct {
	opts cliOptions
	out  io.Writer
	app  *app.App
}

func newRootCommand(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "shop-cli",
		Short:         "Call the Shopify shop tools directly",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			c.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&c.opts.logLevel, "log-level", "warn", "log level")
	flags.BoolVar(&c.opts.asJSON, "json", false, "print an MCP-shaped JSON tool result")
	flags.DurationVar(&c.opts.timeout, "timeout", 20*time.Second, "overall deadline for the command")

	root.AddCommand(
		c.toolCommand("list-products", "List the first few products", "list_products", func(cmd *cobra.Command) {
			cmd.Flags().Int("limit", 5, "number of products")
		}),
		c.toolCommand("price-list", "List product titles with prices", "price_list", func(cmd *cobra.Command) {
			cmd.Flags().Int("limit", 5, "number of products")
		}),
		c.toolCommand("create-cart", "Create a cart with one variant", "create_cart", func(cmd *cobra.Command) {
			cmd.Flags().String("variant-id", "", "ProductVariant GID")
			cmd.Flags().Int("quantity", 1, "quantity")
			_ = cmd.MarkFlagRequired("variant-id")
		}),
		c.toolCommand("add-to-cart", "Add a variant to an existing cart", "add_to_cart", func(cmd *cobra.Command) {
			cmd.Flags().String("cart-id", "", "cart GID returned by create-cart")
			cmd.Flags().String("variant-id", "", "ProductVariant GID")
			cmd.Flags().Int("quantity", 1, "quantity")
			_ = cmd.MarkFlagRequired("cart-id")
			_ = cmd.MarkFlagRequired("variant-id")
		}),
		c.toolCommand("rate", "Submit a 1 to 5 star rating", "rate_us", func(cmd *cobra.Command) {
			cmd.Flags().Int("stars", 0, "stars, 1 to 5")
			cmd.Flags().String("comment", "", "optional comment")
			_ = cmd.MarkFlagRequired("stars")
		}),
		c.graphQLCommand(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.opts.envFile)
	if err != nil {
		return err
	}
	logger, err := telemetry.NewLogger(c.opts.logLevel)
	if err != nil {
		return err
	}
	c.app, err = app.New(cfg, logger)
	return err
}

func (c *cli) teardown() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.app.Logger.Warn("failed to close ratings store", zap.Error(err))
	}
	_ = c.app.Logger.Sync()
}

// flagArguments maps set flags (kebab-case) to tool arguments (snake_case).
var flagArguments = map[string]string{
	"limit":      "limit",
	"variant-id": "variant_id",
	"cart-id":    "cart_id",
	"quantity":   "quantity",
	"stars":      "stars",
	"comment":    "comment",
}

func (c *cli) toolCommand(use, short, tool string, defineFlags func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args := map[string]any{}
			for flagName, argName := range flagArguments {
				f := cmd.Flags().Lookup(flagName)
				if f == nil {
					continue
				}
				switch f.Value.Type() {
				case "int":
					v, err := cmd.Flags().GetInt(flagName)
					if err != nil {
						return err
					}
					args[argName] = v
				default:
					args[argName] = f.Value.String()
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.opts.timeout)
			defer cancel()
			return c.print(c.app.Registry.Call(ctx, tool, args))
		},
	}
	defineFlags(cmd)
	return cmd
}

func (c *cli) graphQLCommand() *cobra.Command {
	var query, variables string
	cmd := &cobra.Command{
		Use:   "graphql",
		Short: "Run a raw Storefront GraphQL query and print the payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := map[string]any{}
			if variables != "" {
				if err := json.Unmarshal([]byte(variables), &vars); err != nil {
					return fmt.Errorf("invalid --variables: %w", err)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.opts.timeout)
			defer cancel()

			enc := json.NewEncoder(c.out)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(c.app.Client.RunGraphQL(ctx, query, vars).Payload())
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "GraphQL document")
	cmd.Flags().StringVar(&variables, "variables", "", "JSON object of variables")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func (c *cli) print(text string) error {
	if !c.opts.asJSON {
		_, err := fmt.Fprintln(c.out, text)
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(ToolResponse{Content: []ContentItem{{Type: "text", Text: text}}})
}
