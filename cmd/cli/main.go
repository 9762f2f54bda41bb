package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"abit-rating/internal/catalog"
	"abit-rating/internal/config"
	"abit-rating/internal/crawler"
	"abit-rating/internal/inspect"
	"abit-rating/internal/ioformats"
	"abit-rating/internal/models"
	"abit-rating/internal/parser"
	"abit-rating/internal/report"
	"abit-rating/internal/service"
	"abit-rating/pkg/logger"
)

const (
	actionList    = "list"
	actionAnalyze = "analyze"
)

var actions = []string{"Вывести список", "Анализ списка"}

type options struct {
	university int
	faculty    int
	action     string
	limit      int
	position   int
	htmlFile   string
	format     string
	output     string
	catalog    string
	inspectURL string
}

func main() {
	var o options
	flag.IntVar(&o.university, "university", 0, "university number from the catalog (prompted when 0)")
	flag.IntVar(&o.faculty, "faculty", 0, "faculty number within the university (prompted when 0)")
	flag.StringVar(&o.action, "action", "", "list or analyze (prompted when empty)")
	flag.IntVar(&o.limit, "limit", -1, "number of applicants to list (-1 lists all)")
	flag.IntVar(&o.position, "position", 0, "your current place in the rating, for analyze")
	flag.StringVar(&o.htmlFile, "html", "", "read the rating page from a local file instead of fetching it")
	flag.StringVar(&o.format, "format", "table", "list output: table, ndjson, csv or xlsx")
	flag.StringVar(&o.output, "output", "", "output file for list exports (default stdout)")
	flag.StringVar(&o.catalog, "catalog", "", "catalog YAML file (default built-in)")
	flag.StringVar(&o.inspectURL, "inspect", "", "print the tables found at URL and exit")
	flag.Parse()

	if err := run(o, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(o options, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithOptions(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if o.catalog == "" {
		o.catalog = cfg.Catalog.Path
	}

	client := crawler.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.DialTimeout, cfg.HTTP.SizeCap, cfg.HTTP.UserAgent)
	if o.inspectURL != "" {
		return inspectPage(client, o.inspectURL, cfg.Parser.Encoding, out)
	}

	cat, err := catalog.Load(o.catalog)
	if err != nil {
		return err
	}
	svc := service.New(cat, client, log, service.ParserOptions(cfg.Parser)...)

	if err := resolve(&o, cat, newPrompter(in, out)); err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("-", 50))
	_, faculty, err := cat.Faculty(o.university, o.faculty)
	if err != nil {
		return err
	}
	report.RenderBudget(out, faculty.BudgetPlaces)

	var rating models.Rating
	if o.htmlFile != "" {
		f, err := os.Open(o.htmlFile)
		if err != nil {
			return err
		}
		defer f.Close()
		rating, err = svc.RatingFromHTML(o.university, o.faculty, f, "")
		if err != nil {
			return err
		}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
		defer cancel()
		rating, err = svc.Rating(ctx, o.university, o.faculty)
		if err != nil {
			return err
		}
	}

	switch o.action {
	case actionList:
		var limit *int
		if o.limit >= 0 {
			limit = &o.limit
		}
		return writeList(o, faculty.Schema().Fields(), report.List(rating.Records, limit), out)
	case actionAnalyze:
		report.RenderAnalysis(out, report.Analyze(rating.Records, o.position))
		return nil
	}
	return fmt.Errorf("unknown action %q", o.action)
}

// resolve fills in whatever the flags left open by asking on the terminal.
func resolve(o *options, cat *catalog.Catalog, p *prompter) error {
	var err error
	if o.university == 0 {
		names := make([]string, len(cat.Universities))
		for i, u := range cat.Universities {
			names[i] = u.Name
		}
		o.university, err = p.choose("Куда поступать:", names, "Выберите один из перечисленных выше ВУЗ'ов (по номеру): ")
		if err != nil {
			return err
		}
	}
	u, err := cat.University(o.university)
	if err != nil {
		return err
	}
	if o.faculty == 0 {
		names := make([]string, len(u.Faculties))
		for i, f := range u.Faculties {
			names[i] = f.Name
		}
		o.faculty, err = p.choose("Какой факультет:", names, "Выберите один из перечисленных выше факультетов (по номеру): ")
		if err != nil {
			return err
		}
	}
	if o.action == "" {
		n, err := p.choose("Выберите действие:", actions, "Выберите одно из перечисленных выше действий (по номеру): ")
		if err != nil {
			return err
		}
		o.action = []string{actionList, actionAnalyze}[n-1]
		switch o.action {
		case actionList:
			n, err := p.decimal("Какое количество абитуриентов вывести (нажмите Enter, чтобы вывести всех): ", 0, unbounded, true)
			if err != nil {
				return err
			}
			if n != nil {
				o.limit = *n
			}
		case actionAnalyze:
			n, err := p.decimal("Введите ваше текущее место в списках: ", 1, unbounded, false)
			if err != nil {
				return err
			}
			o.position = *n
		}
	}
	if o.action == actionAnalyze && o.position < 1 {
		return errors.New("analyze needs -position >= 1")
	}
	return nil
}

func writeList(o options, fields []string, records []models.Record, out io.Writer) error {
	if o.format == "table" {
		fmt.Fprintln(out)
		report.RenderList(out, records)
		return nil
	}
	w := out
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return ioformats.Write(w, o.format, records, fields)
}

func inspectPage(client *crawler.HTTPClient, url, encoding string, out io.Writer) error {
	doc, err := client.Fetch(context.Background(), url)
	if err != nil {
		return err
	}
	page, err := parser.DecodePage(doc.Body, doc.ContentType, encoding)
	if err != nil {
		return err
	}
	tables, err := inspect.Tables(page)
	if err != nil {
		return err
	}
	inspect.Write(out, tables)
	return nil
}
