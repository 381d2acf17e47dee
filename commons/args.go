package commons

import (
	"fmt"
	"net/url"
	"strings"
)

type Action string

const (
	Exit    Action = "exit"
	Search  Action = "search"
	Resolve Action = "resolve"
	None    Action = "none"
)

// Options is the parsed command line.
type Options struct {
	Action    Action
	Query     string
	ShowURL   string
	Selection string // episode selection expression, empty means all
	Download  bool
	Headless  bool
	HasHead   bool // --headed was given, overrides config
}

// PrintHelp writes the CLI usage text.
func PrintHelp() {
	fmt.Println("Aura - AnimeHeaven Scraper")
	fmt.Println("Usage:")
	fmt.Println("  --search, -s <query>   Search for a show and print the results")
	fmt.Println("  --link, -l <URL>       Show page URL to resolve episodes from")
	fmt.Println("  --select, -e <expr>    Episode selection, e.g. \"1-3,10\" (default: all)")
	fmt.Println("  --download, -d         Also download the resolved episodes")
	fmt.Println("  --headed, -hd          Run the browser with a visible window")
	fmt.Println("  --help, -h             Show this help message")
}

// ParseArgs interprets the command line the way the help text describes it.
// It validates combinations but performs no I/O.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{Action: None}

	if len(args) == 0 {
		opts.Action = Exit
		return opts, nil
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			opts.Action = Exit
			return opts, nil
		case "--search", "-s":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--search requires a query argument")
			}
			opts.Query = args[i+1]
			i++
		case "--link", "-l":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--link requires a URL argument")
			}
			opts.ShowURL = args[i+1]
			i++
		case "--select", "-e":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--select requires a selection expression like \"1-3,10\"")
			}
			opts.Selection = args[i+1]
			i++
		case "--download", "-d":
			opts.Download = true
		case "--headed", "-hd":
			opts.HasHead = true
			opts.Headless = false
		default:
			return nil, fmt.Errorf("unknown argument: %s (use --help to see usage)", args[i])
		}
	}

	switch {
	case opts.ShowURL != "":
		if err := validateShowURL(opts.ShowURL); err != nil {
			return nil, err
		}
		opts.Action = Resolve
	case opts.Query != "":
		opts.Action = Search
	default:
		return nil, fmt.Errorf("nothing to do: provide --search or --link")
	}

	if opts.Download && opts.Action != Resolve {
		return nil, fmt.Errorf("--download requires --link")
	}

	return opts, nil
}

func validateShowURL(link string) error {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid show URL: %s", link)
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host != "animeheaven.me" {
		return fmt.Errorf("link is not an animeheaven.me URL: %s", link)
	}
	return nil
}
