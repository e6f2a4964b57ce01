// Command sitemapgen regenerates the static sitemap.xml for the exchange's
// public pages. The page list is fixed at build time; run it whenever a
// public route is added or removed.
//
// Run:
//
//	go run ./cmd/sitemapgen -base https://quantex.example.com -out sitemap.xml
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// publicPages lists the routes reachable without a session. Authenticated
// areas stay out of the sitemap on purpose.
var publicPages = []page{
	{Path: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Path: "/markets", ChangeFreq: "hourly", Priority: "0.9"},
	{Path: "/trade", ChangeFreq: "hourly", Priority: "0.9"},
	{Path: "/register", ChangeFreq: "monthly", Priority: "0.8"},
	{Path: "/login", ChangeFreq: "monthly", Priority: "0.8"},
	{Path: "/affiliate", ChangeFreq: "monthly", Priority: "0.6"},
	{Path: "/about", ChangeFreq: "monthly", Priority: "0.5"},
	{Path: "/fees", ChangeFreq: "weekly", Priority: "0.5"},
	{Path: "/terms", ChangeFreq: "yearly", Priority: "0.3"},
	{Path: "/privacy", ChangeFreq: "yearly", Priority: "0.3"},
}

type page struct {
	Path       string
	ChangeFreq string
	Priority   string
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

func main() {
	var (
		base = flag.String("base", "https://quantex.example.com", "site base URL")
		out  = flag.String("out", "sitemap.xml", "output file path")
	)
	flag.Parse()

	trimmed := strings.TrimRight(*base, "/")
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		fmt.Fprintln(os.Stderr, "base must be an absolute http(s) URL")
		os.Exit(2)
	}

	doc := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	lastMod := time.Now().UTC().Format("2006-01-02")
	for _, p := range publicPages {
		doc.URLs = append(doc.URLs, urlEntry{
			Loc:        trimmed + p.Path,
			LastMod:    lastMod,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal sitemap: %v\n", err)
		os.Exit(1)
	}
	payload := []byte(xml.Header + string(body) + "\n")

	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d pages)\n", *out, len(publicPages))
}
