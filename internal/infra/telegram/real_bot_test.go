// File: internal/infra/telegram/real_bot_test.go
package telegram

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"telegram-stars-store/internal/application"
	"telegram-stars-store/internal/domain/ports/adapter"
)

func testAdapter() *RealBotAdapter {
	logger := zerolog.Nop()
	facade := application.NewBotFacade(nil, nil, nil, nil, nil, nil, nil, []int64{1111}, &logger)
	r := &RealBotAdapter{facade: facade, log: &logger}
	r.buildRoutes()
	return r
}

func TestCommandRoutesCoverTheSurface(t *testing.T) {
	r := testAdapter()

	want := []string{
		"start", "help", "pay", "premium", "donate", "cancel",
		"admin", "stats", "add_product", "edit_product",
		"set_product_status", "delete_product", "mark_refund",
	}
	for _, cmd := range want {
		if _, ok := r.cmdRoutes[cmd]; !ok {
			t.Fatalf("missing command route %q", cmd)
		}
	}
}

func TestCallbackRoutePrecedence(t *testing.T) {
	r := testAdapter()

	// donate:custom must hit the exact route, not the donate: prefix.
	if _, ok := r.cbRoutes["donate:custom"]; !ok {
		t.Fatal("donate:custom must be an exact route")
	}
	var prefixes []string
	for _, route := range r.cbPrefixRoutes {
		prefixes = append(prefixes, route.prefix)
	}
	for _, want := range []string{"buy:", "donate:"} {
		found := false
		for _, p := range prefixes {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing prefix route %q in %v", want, prefixes)
		}
	}
	if strings.HasPrefix("donate:custom", "donate:") == false {
		t.Fatal("sanity: exact lookup must shadow the prefix route")
	}
}

func TestBuildMarkup(t *testing.T) {
	rows := [][]adapter.InlineButton{
		{{Text: "Buy", Data: "buy:1"}, {Text: "Site", URL: "https://example.org"}},
		{{Text: "Skip", Data: "skip_message"}},
	}
	markup := buildMarkup(rows)

	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	first := markup.InlineKeyboard[0]
	if len(first) != 2 || *first[0].CallbackData != "buy:1" {
		t.Fatalf("bad first row: %+v", first)
	}
	if first[1].URL == nil || *first[1].URL != "https://example.org" {
		t.Fatalf("url button lost: %+v", first[1])
	}
}
