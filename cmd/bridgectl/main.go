// Command bridgectl queries a running bridge-console from the terminal.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/pkg/client"
)

func main() {
	var (
		addr    = flag.String("addr", envOr("BRIDGE_ADDR", "http://localhost:8080"), "bridge-console base URL")
		apiKey  = flag.String("key", os.Getenv("BRIDGE_API_KEY"), "API key")
		timeout = flag.Duration("timeout", 10*time.Second, "request timeout")
		asJSON  = flag.Bool("json", false, "print raw JSON")
		source  = flag.String("source", "", "loads: filter by source (live, fallback)")
		limit   = flag.Int("limit", 20, "loads: maximum records")
		refresh = flag.Duration("refresh", 0, "watch: re-request the panel at this interval")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `bridgectl - bridge-console command line client

Usage:
  bridgectl [options] <command> [id]

Commands:
  status            scenario load status
  systems           list ship systems
  system <id>       show one system
  damage <id>       show a damage node and its subtree
  stations          list stations
  station <id>      render a station panel
  watch <id>        stream a station panel over websocket
  loads             list load history

Options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := client.NewClient(*addr, *apiKey, client.WithTimeout(*timeout))
	out := os.Stdout

	var err error
	switch cmd := args[0]; cmd {
	case "status":
		var st *client.Status
		if st, err = c.Status(ctx); err == nil {
			err = render(out, *asJSON, st, func(w io.Writer) { printStatus(w, st) })
		}
	case "systems":
		var systems []models.System
		if systems, err = c.Systems(ctx); err == nil {
			err = render(out, *asJSON, systems, func(w io.Writer) { printSystems(w, systems) })
		}
	case "system":
		var sys *models.System
		if sys, err = c.System(ctx, argID(args)); err == nil {
			err = render(out, *asJSON, sys, func(w io.Writer) { printSystems(w, []models.System{*sys}) })
		}
	case "damage":
		var node *client.DamageNode
		if node, err = c.DamageNode(ctx, argID(args)); err == nil {
			err = render(out, *asJSON, node, func(w io.Writer) { printDamageNode(w, node.Node, 0) })
		}
	case "stations":
		var list []models.Station
		if list, err = c.Stations(ctx); err == nil {
			err = render(out, *asJSON, list, func(w io.Writer) { printStations(w, list) })
		}
	case "station":
		var panel *models.Panel
		if panel, err = c.Station(ctx, argID(args)); err == nil {
			err = render(out, *asJSON, panel, func(w io.Writer) { printPanel(w, panel) })
		}
	case "watch":
		err = watch(ctx, c, argID(args), *refresh, *asJSON)
	case "loads":
		var loads []models.LoadRecord
		opts := client.LoadOptions{Source: models.LoadSource(*source), Limit: *limit}
		if loads, err = c.Loads(ctx, opts); err == nil {
			err = render(out, *asJSON, loads, func(w io.Writer) { printLoads(w, loads) })
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func argID(args []string) string {
	if len(args) < 2 || args[1] == "" {
		fmt.Fprintf(os.Stderr, "%s requires an id\n", args[0])
		os.Exit(2)
	}
	return args[1]
}

func render(w io.Writer, asJSON bool, v interface{}, text func(io.Writer)) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func watch(ctx context.Context, c *client.Client, id string, refresh time.Duration, asJSON bool) error {
	feed, err := c.WatchStation(ctx, id)
	if err != nil {
		return err
	}
	defer feed.Close()

	go func() {
		<-ctx.Done()
		feed.Close()
	}()

	if refresh > 0 {
		go func() {
			ticker := time.NewTicker(refresh)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if feed.Refresh() != nil {
						return
					}
				}
			}
		}()
	}

	for {
		panel, err := feed.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := render(os.Stdout, asJSON, panel, func(w io.Writer) { printPanel(w, panel) }); err != nil {
			return err
		}
	}
}

func printStatus(w io.Writer, st *client.Status) {
	fmt.Fprintf(w, "SCENARIO\t%s (%s)\n", st.Name, st.ScenarioID)
	fmt.Fprintf(w, "SHIP\t%s %s %s\n", st.Ship.Name, st.Ship.Class, st.Ship.Registry)
	fmt.Fprintf(w, "SYSTEMS\t%d\n", st.Systems)
	fmt.Fprintf(w, "SOURCE\t%s\n", st.Load.Source)
	fmt.Fprintf(w, "URL\t%s\n", st.Load.URL)
	if st.Load.Error != "" {
		fmt.Fprintf(w, "ERROR\t%s\n", st.Load.Error)
	}
	if !st.Load.LoadedAt.IsZero() {
		fmt.Fprintf(w, "LOADED\t%s (%dms)\n", st.Load.LoadedAt.Format(time.RFC3339), st.Load.DurationMs)
	}
}

func printSystems(w io.Writer, systems []models.System) {
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPOWER\tINTEGRITY\tNOTE")
	for _, s := range systems {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Status, percent(s.Power), percent(s.Integrity), s.Note)
	}
}

func printDamageNode(w io.Writer, n models.DamageNode, depth int) {
	fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", strings.Repeat("  ", depth), n.ID, n.Name, n.Status, percent(n.Integrity))
	for _, child := range n.Children {
		printDamageNode(w, child, depth+1)
	}
}

func printStations(w io.Writer, list []models.Station) {
	fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
	for _, st := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", st.ID, st.Title, st.Description)
	}
}

func printPanel(w io.Writer, p *models.Panel) {
	fmt.Fprintf(w, "== %s [%s]\n", p.Title, p.Tone)
	if p.Unavailable {
		fmt.Fprintln(w, p.Message)
		return
	}
	for _, m := range p.Metrics {
		value := "-"
		if m.Value != nil {
			value = fmt.Sprintf("%g%s", *m.Value, m.Unit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Label, value, m.Tone)
	}
	fmt.Fprintln(w)
	printRows(w, p.Rows, 0)
	for _, a := range p.Alerts {
		fmt.Fprintf(w, "! %s\n", a)
	}
}

func printRows(w io.Writer, rows []models.Row, depth int) {
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", strings.Repeat("  ", depth), r.Label, r.Status, r.Tone, r.Detail)
		printRows(w, r.Children, depth+1)
	}
}

func printLoads(w io.Writer, loads []models.LoadRecord) {
	fmt.Fprintln(w, "LOADED\tSOURCE\tSCENARIO\tSYSTEMS\tDURATION\tERROR")
	for _, l := range loads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%s\n", l.LoadedAt.Format(time.RFC3339), l.Source, l.ScenarioID, l.Systems, l.DurationMs, l.Error)
	}
}

func percent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g%%", *v)
}
