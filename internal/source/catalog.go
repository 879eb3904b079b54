package source

import (
	"time"

	"github.com/sells-group/econ-intel/internal/config"
	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

// Upstream dataset locations. Wikipedia list articles are the common
// denominator; each indicator gets at least one independent second source so
// reconciliation has something to cross-check.
const (
	gdpWikipediaURL  = "https://en.wikipedia.org/wiki/List_of_countries_by_GDP_(PPP)_per_capita"
	gdpWorldBankURL  = "https://api.worldbank.org/v2/country/all/indicator/NY.GDP.PCAP.PP.CD?format=json&per_page=400&mrnev=1"
	hdiWikipediaURL  = "https://en.wikipedia.org/wiki/List_of_countries_by_Human_Development_Index"
	hdiUNDPDefault   = "https://hdr.undp.org/sites/default/files/2023-24_HDR/HDR23-24_Composite_indices_complete_time_series.csv"
	happinessWikiURL = "https://en.wikipedia.org/wiki/World_Happiness_Report"
	happinessWHRURL  = "https://happiness-report.s3.amazonaws.com/2024/DataForFigure2.1.xls"
	colWikipediaURL  = "https://en.wikipedia.org/wiki/List_of_countries_by_cost_of_living"
	colWPRURL        = "https://worldpopulationreview.com/country-rankings/cost-of-living-by-country"
)

// DefaultRegistry wires the built-in source catalog with shared transports.
func DefaultRegistry(cfg config.FetchConfig) *Registry {
	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.UserAgent,
		Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
		MaxRetries: cfg.MaxRetries,
	})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{
		Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
	})
	transports := map[string]fetcher.Fetcher{
		"https": httpFetcher,
		"ftp":   ftpFetcher,
	}

	// The UNDP extract is the one catalog entry with an overridable location:
	// bulk mirrors of it are still served over anonymous FTP.
	hdiBulkURL := cfg.HDIBulkURL
	if hdiBulkURL == "" {
		hdiBulkURL = hdiUNDPDefault
	}

	return NewRegistry(
		// GDP per capita (PPP): IMF column of the Wikipedia list article is
		// primary, World Bank API is the cross-check.
		NewHTMLTableSource("wikipedia_imf", model.IndicatorGDPPerCapitaPPP,
			gdpWikipediaURL, "wikitable", []string{"imf"}, httpFetcher),
		NewWorldBankSource("world_bank", gdpWorldBankURL, httpFetcher),

		// HDI: Wikipedia list article primary, UNDP time-series extract as
		// the cross-check.
		NewHTMLTableSource("wikipedia", model.IndicatorHDI,
			hdiWikipediaURL, "wikitable", []string{"hdi", "human development"}, httpFetcher),
		NewCSVSource("undp", model.IndicatorHDI, hdiBulkURL,
			[]string{"country"}, []string{"hdi_2022", "hdi"},
			fetcher.CSVOptions{TrimSpace: true}, transports),

		// Happiness: Wikipedia report tables primary, WHR data appendix
		// workbook as the cross-check.
		NewHTMLTableSource("wikipedia", model.IndicatorHappiness,
			happinessWikiURL, "wikitable", []string{"score", "ladder"}, httpFetcher),
		NewXLSXSource("world_happiness", model.IndicatorHappiness, happinessWHRURL,
			[]string{"country"}, []string{"ladder score", "happiness score"},
			fetcher.XLSXOptions{}, httpFetcher),

		// Cost of living: two independent index tables.
		NewHTMLTableSource("wikipedia", model.IndicatorCostOfLiving,
			colWikipediaURL, "wikitable", []string{"cost of living index", "cost-of-living index"}, httpFetcher),
		NewHTMLTableSource("wpr", model.IndicatorCostOfLiving,
			colWPRURL, "", []string{"cost of living index"}, httpFetcher),
	)
}
