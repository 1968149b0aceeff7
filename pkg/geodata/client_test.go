package geodata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClientProvinces(t *testing.T) {
	const respBody = `[{"id":1,"name_th":"กรุงเทพมหานคร","name_en":"Bangkok"},{"id":50,"name_th":"เชียงใหม่","name_en":"Chiang Mai"}]`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://geo.test/provinces.json", "http://geo.test/districts.json", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	provinces, err := client.Provinces(context.Background())
	if err != nil {
		t.Fatalf("provinces: %v", err)
	}
	if capturedURL != "http://geo.test/provinces.json" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(provinces) != 2 {
		t.Fatalf("expected 2 provinces, got %d", len(provinces))
	}
	if provinces[1].NameEN != "Chiang Mai" {
		t.Fatalf("unexpected province %+v", provinces[1])
	}
}

func TestClientDistrictsUpstreamError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream broke")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://geo.test/provinces.json", "http://geo.test/districts.json", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Districts(context.Background())
	if err == nil {
		t.Fatal("expected upstream error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewClientRequiresURLs(t *testing.T) {
	if _, err := NewClient("", "http://geo.test/districts.json"); err == nil {
		t.Fatal("expected error for missing province URL")
	}
}
