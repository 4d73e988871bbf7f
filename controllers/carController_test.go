package controllers

import (
	"strings"
	"testing"

	"github.com/ShubhamPatel2305/Vroomify/models"
	"github.com/go-playground/validator/v10"
)

func validCarInput() models.AddCarInput {
	return models.AddCarInput{
		Title:        "2019 Swift",
		Description:  "Well maintained hatchback",
		CarType:      "hatchback",
		Company:      "Maruti",
		Variant:      "mid",
		Dealer:       "City Motors",
		CreatedBy:    "67397c737fb3d61e7da12be4",
		CreatorName:  "Alice",
		CreatorEmail: "alice@example.com",
	}
}

func TestAddCarInput_DescriptionLength(t *testing.T) {
	validate := validator.New()

	input := validCarInput()
	input.Description = "123456789" // 9 characters
	err := validate.Struct(input)
	if err == nil {
		t.Fatalf("expected validation failure for 9-character description")
	}
	msgs := validationMessages(err)
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "Description") && strings.Contains(m, "10") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a message mentioning description length, got %v", msgs)
	}

	input.Description = "1234567890" // 10 characters
	if err := validate.Struct(input); err != nil {
		t.Fatalf("expected 10-character description to pass, got %v", err)
	}
}

func TestAddCarInput_VariantEnum(t *testing.T) {
	validate := validator.New()

	for _, variant := range []string{"low", "mid", "top"} {
		input := validCarInput()
		input.Variant = variant
		if err := validate.Struct(input); err != nil {
			t.Fatalf("variant %q should pass: %v", variant, err)
		}
	}

	input := validCarInput()
	input.Variant = "premium"
	if err := validate.Struct(input); err == nil {
		t.Fatalf("expected variant %q to fail validation", input.Variant)
	}
}

func TestAddCarInput_MissingFieldsAllListed(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(models.AddCarInput{})
	if err == nil {
		t.Fatalf("expected validation failure for empty input")
	}
	msgs := validationMessages(err)
	if len(msgs) < 9 {
		t.Fatalf("expected a message per missing field, got %d: %v", len(msgs), msgs)
	}
}

func strPtr(s string) *string { return &s }

func storedCar() models.Car {
	return models.Car{
		CarID:       "abc123",
		Title:       "2019 Swift",
		Description: "Well maintained hatchback",
		Images:      []string{"https://gw/ipfs/cid-1", "https://gw/ipfs/cid-2"},
		Tags: models.CarTags{
			CarType: "hatchback",
			Company: "Maruti",
			Variant: "mid",
			Dealer:  "City Motors",
		},
		CreatedBy: "owner-1",
	}
}

func TestDetailsUpdate_OnlyChangedFields(t *testing.T) {
	car := storedCar()

	update := detailsUpdate(car, models.EditDetailsRequest{
		CarID: car.CarID,
		Title: strPtr("2020 Swift"),
	})

	if len(update) != 1 {
		t.Fatalf("expected exactly one field in update, got %v", update)
	}
	if update["title"] != "2020 Swift" {
		t.Fatalf("unexpected title: %v", update["title"])
	}
}

func TestDetailsUpdate_SameValuesNotPersisted(t *testing.T) {
	car := storedCar()

	// Title is supplied but identical; only description actually changes.
	update := detailsUpdate(car, models.EditDetailsRequest{
		CarID:       car.CarID,
		Title:       strPtr(car.Title),
		Description: strPtr("Freshly serviced hatchback"),
	})

	if _, ok := update["title"]; ok {
		t.Fatalf("unchanged title must not be persisted: %v", update)
	}
	if update["description"] != "Freshly serviced hatchback" {
		t.Fatalf("expected description update, got %v", update)
	}
}

func TestDetailsUpdate_NoChange(t *testing.T) {
	car := storedCar()
	tags := car.Tags

	update := detailsUpdate(car, models.EditDetailsRequest{
		CarID:       car.CarID,
		Title:       strPtr(car.Title),
		Description: strPtr(car.Description),
		Tags:        &tags,
	})

	if len(update) != 0 {
		t.Fatalf("expected empty update for no-op edit, got %v", update)
	}
}

func TestDetailsUpdate_TagsChanged(t *testing.T) {
	car := storedCar()
	tags := car.Tags
	tags.Variant = "top"

	update := detailsUpdate(car, models.EditDetailsRequest{CarID: car.CarID, Tags: &tags})

	got, ok := update["tags"].(models.CarTags)
	if !ok {
		t.Fatalf("expected tags in update, got %v", update)
	}
	if got.Variant != "top" {
		t.Fatalf("unexpected variant: %q", got.Variant)
	}
}

func TestMergeImageLists(t *testing.T) {
	merged := mergeImageLists(
		[]string{"https://gw/ipfs/a"},
		[]string{"https://gw/ipfs/b", "https://gw/ipfs/c"},
	)
	want := []string{"https://gw/ipfs/a", "https://gw/ipfs/b", "https://gw/ipfs/c"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d URLs, got %v", len(want), merged)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("order not preserved: got %v", merged)
		}
	}
}

func TestMergeImageLists_EmptyRetained(t *testing.T) {
	merged := mergeImageLists(nil, []string{"u1", "u2", "u3"})
	if len(merged) != 3 || merged[0] != "u1" || merged[2] != "u3" {
		t.Fatalf("expected exactly the uploaded URLs in order, got %v", merged)
	}
}

func TestValidateImageCount(t *testing.T) {
	cases := []struct {
		total  int
		wantOK bool
	}{
		{0, false},
		{1, true},
		{10, true},
		{11, false},
	}
	for _, tc := range cases {
		err := validateImageCount(tc.total)
		if tc.wantOK && err != nil {
			t.Fatalf("total %d should pass: %v", tc.total, err)
		}
		if !tc.wantOK && err == nil {
			t.Fatalf("total %d should fail", tc.total)
		}
	}
}

func TestImagesUnchanged(t *testing.T) {
	stored := []string{"a", "b"}

	if !imagesUnchanged([]string{"a", "b"}, stored, 0) {
		t.Fatalf("identical list with no new files should be unchanged")
	}
	if imagesUnchanged([]string{"a"}, stored, 0) {
		t.Fatalf("removal should count as a change")
	}
	if imagesUnchanged([]string{"b", "a"}, stored, 0) {
		t.Fatalf("reorder should count as a change")
	}
	if imagesUnchanged([]string{"a", "b"}, stored, 1) {
		t.Fatalf("new files should count as a change")
	}
}
