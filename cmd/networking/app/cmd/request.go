package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keboola/go-networking/cmd/networking/app/config"
	"github.com/keboola/go-networking/cmd/networking/app/logger"
	"github.com/keboola/go-networking/pkg/codec"
	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/provider"
	"github.com/keboola/go-networking/pkg/transport"
	"github.com/keboola/go-networking/pkg/transport/trace"
)

func NewRequestCmd() *cobra.Command {
	var (
		method  string
		queries map[string]string
		headers map[string]string
		data    string
	)

	cmd := &cobra.Command{
		Use:   "request [path]",
		Short: "Send a request and print the response",
		Long:  `Send a request to the path relative to the base URL, print the status line and the response body`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			// Compose endpoint
			m, err := endpoint.ParseMethod(method)
			if err != nil {
				return err
			}
			e := endpoint.New().WithMethod(m).WithPath(args[0]).WithQueries(queries).WithHeaders(headers)
			if data != "" {
				var body any
				if err := codec.NewJSONWithConfig(codec.JSONConfig{UseNumber: true}).Decode([]byte(data), &body); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
				e = e.WithBody(body)
			}

			// Create provider
			t := transport.NewHTTP().WithObserver(trace.ZapObserver(log))
			if cfg.Dump {
				t = t.AndObserver(trace.DumpObserver(cmd.ErrOrStderr()))
			}
			p, err := provider.NewFromConfig(cfg.ProviderConfig(userAgent), t)
			if err != nil {
				return err
			}

			// Send
			res, err := p.Fetch(cmd.Context(), e)
			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", endpoint.MethodGet.String(), "HTTP method")
	cmd.Flags().StringToStringVarP(&queries, "query", "q", nil, "query parameter key=value, can be repeated")
	cmd.Flags().StringToStringVarP(&headers, "header", "H", nil, "header key=value, can be repeated")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().Bool("dump", false, "dump requests and responses to stderr, output may contain tokens")

	return cmd
}

func printResponse(cmd *cobra.Command, res *transport.Response) error {
	out := cmd.OutOrStdout()
	status := res.Status
	if status == "" {
		status = fmt.Sprint(res.StatusCode)
	}
	if _, err := fmt.Fprintln(out, strings.TrimSpace(res.Proto+" "+status)); err != nil {
		return err
	}

	body := res.Body
	if codec.IsJSONContentType(res.ContentType()) {
		pretty := codec.NewJSONWithConfig(codec.JSONConfig{UseNumber: true, SortMapKeys: true, Indent: "  "})
		var value any
		if err := pretty.Decode(body, &value); err == nil {
			if indented, err := pretty.Encode(value); err == nil {
				body = indented
			}
		}
	}
	if len(body) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(out, strings.TrimRight(string(body), "\n"))
	return err
}
