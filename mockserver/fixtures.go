package mockserver

import (
	"net/url"
	"strconv"
	"strings"
)

// created is the timestamp every fixture reports.
const created int64 = 1234567890

// resource describes one collection under /v1.
type resource struct {
	collection string
	fixture    func() map[string]any
	deletable  bool
	capturable bool
}

var resources = []resource{
	{collection: "charges", fixture: chargeFixture, capturable: true},
	{collection: "customers", fixture: customerFixture, deletable: true},
	{collection: "plans", fixture: planFixture, deletable: true},
}

func chargeFixture() map[string]any {
	return map[string]any{
		"id":              "ch_1BeRQp2eZvKYlo2C0tPYEGFA",
		"object":          "charge",
		"amount":          int64(100),
		"amount_refunded": int64(0),
		"captured":        true,
		"created":         created,
		"currency":        "usd",
		"customer":        nil,
		"description":     nil,
		"livemode":        false,
		"metadata":        map[string]any{},
		"paid":            true,
		"refunded":        false,
		"status":          "succeeded",
	}
}

func customerFixture() map[string]any {
	return map[string]any{
		"id":              "cus_C2ViLGoxhyWCqj",
		"object":          "customer",
		"account_balance": int64(0),
		"created":         created,
		"currency":        "usd",
		"delinquent":      false,
		"description":     nil,
		"email":           nil,
		"livemode":        false,
		"metadata":        map[string]any{},
	}
}

func planFixture() map[string]any {
	return map[string]any{
		"id":                "gold",
		"object":            "plan",
		"amount":            int64(2000),
		"created":           created,
		"currency":          "usd",
		"interval":          "month",
		"interval_count":    int64(1),
		"livemode":          false,
		"metadata":          map[string]any{},
		"name":              "Gold",
		"trial_period_days": nil,
	}
}

// merge copies request parameters onto a fixture. Only fields the fixture
// already has are taken, converted to the fixture's type; metadata[k]
// entries are collected into the metadata map.
func merge(obj map[string]any, form url.Values) {
	for key, vals := range form {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]

		if k, ok := metadataKey(key); ok {
			meta, _ := obj["metadata"].(map[string]any)
			if meta == nil {
				meta = map[string]any{}
			}
			meta[k] = val
			obj["metadata"] = meta
			continue
		}

		current, known := obj[key]
		if !known || key == "object" {
			continue
		}
		switch current.(type) {
		case int64:
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				obj[key] = n
			}
		case bool:
			if b, err := strconv.ParseBool(val); err == nil {
				obj[key] = b
			}
		case map[string]any:
		default:
			obj[key] = val
		}
	}
}

func metadataKey(key string) (string, bool) {
	inner, ok := strings.CutPrefix(key, "metadata[")
	if !ok || !strings.HasSuffix(inner, "]") {
		return "", false
	}
	return strings.TrimSuffix(inner, "]"), true
}
