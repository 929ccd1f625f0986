package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/njallactl/njallactl/pkg/credentials"
	"github.com/njallactl/njallactl/pkg/njalla"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"

	endpointEnvVar = "NJALLA_API_ENDPOINT"
)

// app carries state shared by all subcommands.
type app struct {
	output   string
	endpoint string
	verbose  bool

	env    credentials.Environment
	client *njalla.Client
}

// newRootCmd creates the root njalla command
func newRootCmd(env credentials.Environment) (*cobra.Command, *app) {
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:   "njalla",
		Short: "cli toolkit for njal.la",
		Long: `njalla manages domains, DNS records and servers through the Njalla API.

The API token is read from NJALLA_API_TOKEN in the environment, a .env file
in the current directory, or a .env file in the user configuration directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.output, "output", outputJSON, "Output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&a.endpoint, "endpoint", getEnvOrDefault(endpointEnvVar, njalla.DefaultEndpoint), "Njalla API endpoint")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every API call to stderr")

	// Add subcommands
	rootCmd.AddCommand(newDomainCmd(a))
	rootCmd.AddCommand(newRecordCmd(a))
	rootCmd.AddCommand(newServerCmd(a))

	return rootCmd, a
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	cmd, a := newRootCmd(credentials.DefaultEnvironment())
	defer a.close()
	return cmd.ExecuteContext(ctx)
}

// connect validates global flags and builds the API client on first use.
// Every command that talks to the API calls it before doing anything else.
func (a *app) connect(cmd *cobra.Command) (*njalla.Client, error) {
	if a.output != outputJSON && a.output != outputYAML {
		return nil, fmt.Errorf("unsupported output format %q (use %s or %s)", a.output, outputJSON, outputYAML)
	}
	if a.client != nil {
		return a.client, nil
	}

	token, err := credentials.Resolve(a.env, credentials.DefaultSources()...)
	if err != nil {
		return nil, fmt.Errorf("failed to init client: %w", err)
	}

	opts := []njalla.Option{njalla.WithEndpoint(a.endpoint)}
	if a.verbose {
		opts = append(opts, njalla.WithLogger(log.New(cmd.ErrOrStderr(), "njalla: ", log.LstdFlags)))
	}

	a.client, err = njalla.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init client: %w", err)
	}
	return a.client, nil
}

func (a *app) close() {
	if a.client != nil {
		a.client.Close()
	}
}

// print writes v to the command output in the selected format.
func (a *app) print(cmd *cobra.Command, v any) error {
	var (
		data []byte
		err  error
	)
	switch a.output {
	case outputYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// positiveInt parses a positional argument that must be a positive integer.
func positiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}

// requirePositive checks an integer flag value.
func requirePositive[N ~int | ~uint32](name string, value N) error {
	if value <= 0 {
		return fmt.Errorf("--%s must be a positive integer, got %d", name, value)
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
