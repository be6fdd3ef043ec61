// Package adapter normalizes raw Moveware payloads into the internal model.
// Every function here is pure: no I/O, no clock, no hidden state. Identical
// input always yields identical output, and no output ever carries a nil,
// NaN or missing field.
package adapter

import (
	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/internal/moveware/transport"
)

// Quotation maps one raw job/quotation object to the canonical job record,
// embedding the tenant branding snapshot.
func Quotation(raw map[string]any, branding transport.Branding) transport.Job {
	job := transport.Job{
		ID:        int64(fields.Num(fields.Pick(raw, "id", "jobId"))),
		Title:     fields.Str(fields.Pick(raw, "titleName", "title")),
		FirstName: fields.Str(fields.Pick(raw, "firstName")),
		LastName:  fields.Str(fields.Pick(raw, "lastName", "surname", "familyName")),
		MoveType:  fields.Str(fields.Pick(raw, "moveType", "type")),
		Brand:     fields.Str(fields.Pick(raw, "brand", "brandCode")),
		Branch:    fields.Str(fields.Pick(raw, "branch", "branchCode")),
		Branding:  branding,
	}

	job.MoveManager = moveManager(raw)
	job.Uplift = jobAddress(raw, "Uplift", "origin", "fromAddress", "pickupAddress")
	job.Delivery = jobAddress(raw, "Delivery", "destination", "toAddress", "deliveryAddress")

	// Some jobs have no measures yet; both values stay 0 rather than erroring.
	if measures := fields.ToArray(fields.Pick(raw, "measures")); len(measures) > 0 {
		first := fields.AsMap(measures[0])
		gross := fields.AsMap(fields.Dig(first, "volume", "gross"))
		job.VolumeM3 = fields.Num(fields.Pick(gross, "m3", "meter"))
		job.WeightKg = fields.Num(fields.Dig(first, "weight", "gross", "kg"))
	}

	return job
}

// moveManager prefers the structured sales-representative role entity and
// falls back to the flat string fields older payloads carry.
func moveManager(raw map[string]any) string {
	entity := fields.AsMap(fields.Dig(raw, "roles", "salesRepresentative", "entity"))
	first := fields.Str(fields.Pick(entity, "firstName"))
	last := fields.Str(fields.Pick(entity, "lastName"))
	if first != "" || last != "" {
		return joinName(first, last)
	}
	return fields.Str(fields.Pick(raw, "moveManager", "consultant", "assignedTo"))
}

// jobAddress resolves one structured address. Priority: the named sub-object
// under "addresses" (richer, contact-bearing), then the generic sub-object,
// then the oldest-style flat root field which carries only a single line.
func jobAddress(raw map[string]any, named, generic string, flatKeys ...string) transport.Address {
	addresses := fields.AsMap(fields.Pick(raw, "addresses"))

	if sub := fields.AsMap(fields.Pick(addresses, named)); len(sub) > 0 {
		return structuredAddress(sub)
	}
	if sub := fields.AsMap(fields.Pick(addresses, generic)); len(sub) > 0 {
		return structuredAddress(sub)
	}

	return transport.Address{
		Line1: fields.Str(fields.Pick(raw, flatKeys...)),
	}
}

func structuredAddress(sub map[string]any) transport.Address {
	return transport.Address{
		Line1:    fields.Str(fields.Pick(sub, "line1", "address1", "street")),
		Line2:    fields.Str(fields.Pick(sub, "line2", "address2")),
		City:     fields.Str(fields.Pick(sub, "city", "town", "suburb")),
		State:    fields.Str(fields.Pick(sub, "state", "region")),
		Postcode: fields.Str(fields.Pick(sub, "postcode", "postCode", "zip")),
		Country:  fields.Str(fields.Pick(sub, "country")),
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
