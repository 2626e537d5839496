package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/netclient/internal/config"
	"github.com/samvad-hq/netclient/internal/logger"
	"github.com/samvad-hq/netclient/pkg/environments"
	"github.com/samvad-hq/netclient/pkg/httpclient"
	"github.com/samvad-hq/netclient/pkg/network"
	"github.com/urfave/cli/v2"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatHTML = "html"
)

func newApp(cfg *config.Config, log logger.Logger) *cli.App {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &cli.App{
		Name:      "netfetch",
		Usage:     "fetch one endpoint against a configured environment",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "environments-file",
				Usage: "YAML/JSON file declaring environments",
				Value: cfg.EnvironmentsFile,
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "environment name",
				Value:   cfg.Environment,
			},
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"X"},
				Usage:   "HTTP method",
				Value:   string(network.MethodGet),
			},
			&cli.StringSliceFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "query parameter name=value (name alone sends no value)",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "custom header name=value",
			},
			&cli.StringFlag{
				Name:  "body",
				Usage: "JSON request body",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "response format: json, yaml or html",
				Value: formatJSON,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one PATH argument is required", 2)
			}

			reg, err := environments.LoadRegistry(c.String("environments-file"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			env, err := reg.Environment(c.String("env"))
			if err != nil {
				return cli.Exit(err, 1)
			}

			opts := []network.RequestOption{network.WithCustomHeaders(parseHeaders(c.StringSlice("header")))}
			if raw := strings.TrimSpace(c.String("body")); raw != "" {
				var body any
				if err := json.Unmarshal([]byte(raw), &body); err != nil {
					return cli.Exit(fmt.Sprintf("invalid --body: %v", err), 2)
				}
				opts = append(opts, network.WithBody(body))
			}

			endpoint := network.NewEndpoint(c.Args().First(), parseQuery(c.StringSlice("query"))...)
			method := network.Method(strings.ToUpper(strings.TrimSpace(c.String("method"))))

			client := network.NewClient(
				httpclient.NewRestyClient(cfg.TransportTimeout),
				network.WithDefaultEnvironment(env),
				network.WithLogger(log),
			)

			out, err := fetch(c, client, endpoint, method, opts)
			if err != nil {
				return exitFor(err)
			}
			_, err = fmt.Fprintln(c.App.Writer, out)
			return err
		},
	}
}

func fetch(c *cli.Context, client *network.Client, endpoint network.Endpoint, method network.Method, opts []network.RequestOption) (string, error) {
	switch strings.ToLower(c.String("format")) {
	case formatHTML:
		req, err := network.NewRequest[*goquery.Document](endpoint, method, opts...)
		if err != nil {
			return "", err
		}
		doc, err := network.FetchWith[*goquery.Document](c.Context, client, req, network.HTMLDecoding{})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(doc.Find("title").First().Text()), nil
	case formatYAML:
		req, err := network.NewRequest[any](endpoint, method, opts...)
		if err != nil {
			return "", err
		}
		v, err := network.FetchWith[any](c.Context, client, req, network.YAMLDecoding[any]{})
		if err != nil {
			return "", err
		}
		return render(v)
	case formatJSON, "":
		req, err := network.NewRequest[any](endpoint, method, opts...)
		if err != nil {
			return "", err
		}
		v, err := network.Fetch(c.Context, client, req)
		if err != nil {
			return "", err
		}
		return render(v)
	default:
		return "", cli.Exit(fmt.Sprintf("unsupported --format %q", c.String("format")), 2)
	}
}

func render(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render response: %w", err)
	}
	return string(out), nil
}

func exitFor(err error) error {
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		return err
	}
	if kind := network.KindOf(err); kind != network.KindUnknown {
		return cli.Exit(fmt.Sprintf("%s: %v", kind, err), 1)
	}
	return cli.Exit(err, 1)
}

// parseQuery turns name=value pairs into query items; a bare name has no value.
func parseQuery(pairs []string) []network.QueryItem {
	items := make([]network.QueryItem, 0, len(pairs))
	for _, p := range pairs {
		name, value, hasValue := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !hasValue {
			items = append(items, network.QueryFlag(name))
			continue
		}
		items = append(items, network.Query(name, value))
	}
	return items
}

func parseHeaders(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, _ := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}
