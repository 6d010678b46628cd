package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/1broseidon/floatwm/internal/api"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/manager"
	"github.com/1broseidon/floatwm/internal/runtimepath"
	"github.com/1broseidon/floatwm/internal/wm"
	"golang.org/x/term"
)

// statusReport is what `floatwm status --json` prints.
type statusReport struct {
	Status    api.Status         `json:"status"`
	Screens   []wm.Screen        `json:"screens"`
	FreeAreas []manager.FreeArea `json:"free_areas"`
	Clients   []wm.Client        `json:"clients"`
}

func apiClient(listen string) (*api.Client, error) {
	if listen != "" {
		return api.NewTCPClient(listen), nil
	}
	socketPath, err := runtimepath.SocketPath(os.Getenv("DISPLAY"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API socket path: %w", err)
	}
	return api.NewUnixClient(socketPath), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Print JSON (default when stdout is not a terminal)")
	listen := fs.String("listen", "", "Query a TCP API address instead of the socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm status [--json] [--listen ADDR]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the running window manager's clients, screens and free areas.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := apiClient(*listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report, err := fetchReport(ctx, client)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fd := int(os.Stdout.Fd())
	if *jsonOut || !term.IsTerminal(fd) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	printReport(os.Stdout, report, width)
	return 0
}

func fetchReport(ctx context.Context, c *api.Client) (statusReport, error) {
	var (
		r   statusReport
		err error
	)
	if r.Status, err = c.Status(ctx); err != nil {
		return r, err
	}
	if r.Screens, err = c.Screens(ctx); err != nil {
		return r, err
	}
	if r.FreeAreas, err = c.FreeAreas(ctx); err != nil {
		return r, err
	}
	if r.Clients, err = c.Clients(ctx); err != nil {
		return r, err
	}
	return r, nil
}

func printReport(w io.Writer, r statusReport, width int) {
	st := r.Status
	fmt.Fprintf(w, "desktop:  %d/%d\n", st.Desktop+1, st.Desktops)
	fmt.Fprintf(w, "clients:  %d (docks: %d, struts: %d)\n", st.Clients, st.Docks, st.Struts)
	fmt.Fprintf(w, "uptime:   %s\n", st.Uptime)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCREEN\tNAME\tGEOMETRY\tFREE")
	for _, s := range r.Screens {
		free := "-"
		for _, fa := range r.FreeAreas {
			if fa.Screen == s.Index {
				free = formatRect(fa.Free)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Index, s.Name, formatRect(s.Rect), free)
	}
	tw.Flush()
	fmt.Fprintln(w)

	// Everything but the title column has a fixed-ish width.
	nameWidth := max(width-70, 12)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tDESKTOP\tLAYER\tGEOMETRY\tSTATE\tTITLE")
	for i := len(r.Clients) - 1; i >= 0; i-- {
		c := r.Clients[i]
		desktop := fmt.Sprintf("%d", c.Desktop+1)
		if c.State.Has(geometry.StateSticky) {
			desktop = "all"
		}
		fmt.Fprintf(tw, "0x%x\t%s\t%s\t%s\t%s\t%s\n",
			uint32(c.ID), desktop, c.Layer, formatRect(c.Rect), c.State, truncate(c.Name, nameWidth))
	}
	tw.Flush()
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	listen := fs.String("listen", "", "Use a TCP API address instead of the socket")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client, err := apiClient(*listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Reload(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reload requested")
	return 0
}
