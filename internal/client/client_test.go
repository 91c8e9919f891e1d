package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request) any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(handler(w, r)); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListProperties(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		if r.URL.Path != "/api/properties" {
			t.Errorf("path = %q, want /api/properties", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("location") != "Makati" || q.Get("maxPrice") != "9000" || q.Get("amenities") != "WiFi,AC" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		return []listing.Property{{ID: 2, Title: "2 Rooms in Share House"}}
	})

	c := New(srv.URL)
	props, err := c.ListProperties(search.PropertyCriteria{
		Location:  "Makati",
		MaxPrice:  9000,
		Amenities: []string{"WiFi", "AC"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 1 || props[0].Title != "2 Rooms in Share House" {
		t.Errorf("props = %+v", props)
	}
}

func TestGetProperty(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		if r.URL.Path != "/api/properties/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		return listing.Property{ID: 42, Title: "Loft"}
	})

	p, err := New(srv.URL).GetProperty(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != 42 || p.Title != "Loft" {
		t.Errorf("property = %+v", p)
	}
}

func TestListRoommates(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		if r.URL.Path != "/api/roommates" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if g := r.URL.Query().Get("gender"); g != "Female" {
			t.Errorf("gender = %q", g)
		}
		return []listing.Roommate{{ID: 2, Name: "Sarah Aquino", Gender: listing.GenderFemale}}
	})

	rs, err := New(srv.URL).ListRoommates(search.RoommateCriteria{Gender: listing.GenderFemale})
	if err != nil {
		t.Fatalf("list roommates: %v", err)
	}
	if len(rs) != 1 || rs[0].Name != "Sarah Aquino" {
		t.Errorf("roommates = %+v", rs)
	}
}

func TestRecommendations(t *testing.T) {
	var gotLimit string
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		gotLimit = r.URL.Query().Get("limit")
		return []listing.Property{{ID: 1}, {ID: 5}}
	})
	c := New(srv.URL)

	props, err := c.Recommendations(2)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if gotLimit != "2" || len(props) != 2 {
		t.Errorf("limit = %q, props = %d", gotLimit, len(props))
	}

	if _, err := c.Recommendations(0); err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if gotLimit != "" {
		t.Errorf("limit = %q, want none", gotLimit)
	}
}

func TestHealth(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		return map[string]string{"status": "ok"}
	})

	if err := New(srv.URL).Health(); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestServerError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) any {
		w.WriteHeader(http.StatusNotFound)
		return map[string]string{"error": "property not found"}
	})

	_, err := New(srv.URL).GetProperty(9)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "property not found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListProperties(search.PropertyCriteria{})
	if err == nil || err.Error() != "server error: Bad Gateway" {
		t.Errorf("error = %v", err)
	}
}
