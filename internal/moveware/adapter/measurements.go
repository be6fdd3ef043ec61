package adapter

import (
	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/internal/moveware/transport"
)

// Measurements maps the aggregate measurement block of a quotation into
// gross totals in both unit systems. The block is read strictly from the
// "measurements" object; anything absent resolves to 0.
func Measurements(raw map[string]any) transport.Measurements {
	block := fields.AsMap(fields.Pick(fields.AsMap(unwrapData(raw)), "measurements"))

	volumeGross := fields.AsMap(fields.Dig(block, "volume", "gross"))
	weightGross := fields.AsMap(fields.Dig(block, "weight", "gross"))

	return transport.Measurements{
		VolumeM3: fields.Num(fields.Pick(volumeGross, "meters", "meter")),
		WeightKg: fields.Num(fields.Pick(weightGross, "kilograms", "kg")),
		WeightLb: fields.Num(fields.Pick(weightGross, "pounds", "lbs")),
	}
}

// Reviews maps raw review records into the internal shape.
func Reviews(raw map[string]any) []transport.Review {
	entries := fields.ToArray(unwrapData(raw), "reviews")
	reviews := make([]transport.Review, 0, len(entries))
	for _, entry := range entries {
		review := fields.AsMap(entry)
		reviews = append(reviews, transport.Review{
			ID:       fields.Str(fields.Pick(review, "id")),
			Rating:   fields.Num(fields.Pick(review, "rating", "score")),
			Comments: fields.Str(fields.Pick(review, "comments", "comment", "text")),
			Author:   fields.Str(fields.Pick(review, "author", "name")),
			Date:     fields.Str(fields.Pick(review, "date", "createdAt")),
		})
	}
	return reviews
}

// Questions maps raw review questions into the internal shape.
func Questions(raw map[string]any) []transport.Question {
	entries := fields.ToArray(unwrapData(raw), "questions")
	questions := make([]transport.Question, 0, len(entries))
	for _, entry := range entries {
		question := fields.AsMap(entry)
		questions = append(questions, transport.Question{
			ID:       fields.Str(fields.Pick(question, "id")),
			Text:     fields.Str(fields.Pick(question, "text", "question", "description")),
			Category: fields.Str(fields.Pick(question, "category", "type")),
		})
	}
	return questions
}
