package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("hackathons")

		collection.Fields.Add(
			&core.TextField{Name: "external_id", Required: true},
			&core.TextField{Name: "title", Required: true},
			&core.URLField{Name: "url", Required: true},
			&core.TextField{Name: "source_platform"},
			&core.SelectField{
				Name:      "format",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"Online", "Offline", "Hybrid"},
			},
			&core.TextField{Name: "location_text"},
			&core.JSONField{Name: "coordinates", MaxSize: 256},
			&core.TextField{Name: "start_date", Required: true},
			&core.TextField{Name: "final_submission_date", Required: true},
			&core.TextField{Name: "created_at_iso"},
			&core.NumberField{Name: "days_to_final", OnlyInt: true},
			&core.JSONField{Name: "themes", MaxSize: 4096},
			&core.JSONField{Name: "prizes", MaxSize: 1024},
			&core.NumberField{Name: "organizer_past_events", OnlyInt: true},
			&core.BoolField{Name: "is_active"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_hackathons_external_id", true, "external_id", "")
		collection.AddIndex("idx_hackathons_active_format", false, "is_active, format", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("hackathons")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
