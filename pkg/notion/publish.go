package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/model"
)

// PublishRun creates one page in the run database summarizing a finished run.
// Publishing is idempotent: if a page for the run already exists it is left
// untouched and its ID returned. Returns the page ID either way.
func PublishRun(ctx context.Context, client Client, dbID string, run *model.Run) (string, error) {
	if run == nil || run.Result == nil {
		return "", eris.New("notion: run has no result to publish")
	}

	title := "Run " + run.ID
	existing, err := client.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Name",
			RichText: &notionapi.TextFilterCondition{Equals: title},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", eris.Wrapf(err, "notion: look up run %s", run.ID)
	}
	if len(existing.Results) > 0 {
		return string(existing.Results[0].ID), nil
	}

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: title}}},
		},
		"Status": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(run.Status)},
		},
		"Anomalies": notionapi.NumberProperty{
			Number: float64(len(run.Result.Anomalies)),
		},
		"Coverage Gaps": notionapi.NumberProperty{
			Number: float64(len(run.Result.Missing)),
		},
		"Warnings": notionapi.NumberProperty{
			Number: float64(len(run.Result.Warnings)),
		},
		"Partial": notionapi.CheckboxProperty{
			Checkbox: run.Result.Partial,
		},
		"Started": notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: (*notionapi.Date)(&run.CreatedAt)},
		},
	}

	page, err := client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{DatabaseID: notionapi.DatabaseID(dbID)},
		Properties: props,
	})
	if err != nil {
		return "", eris.Wrapf(err, "notion: publish run %s", run.ID)
	}
	return string(page.ID), nil
}
