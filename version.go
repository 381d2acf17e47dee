package main

import (
	"fmt"
)

var (
	Version   = "1.0.0"
	BuildDate = "2026-08-30"
)

func printBanner() {
	fmt.Printf("    _                      \n   / \\   _   _  _ __  __ _ \n  / _ \\ | | | || '__|/ _` |\n / ___ \\| |_| || |  | (_| |\n/_/   \\_\\\\__,_||_|   \\__,_|\n")
	fmt.Printf("Version: %s (Build: %s)\n", Version, BuildDate)
	fmt.Println("AnimeHeaven scraper - search, list, resolve")
}
