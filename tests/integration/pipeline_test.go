// Package integration exercises the full query pipeline (client,
// splitter, fetcher) against a mock Carbon Intensity API.
package integration

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carbonwatch/carbon-intensity-client/internal/testutil"
	"github.com/carbonwatch/carbon-intensity-client/pkg/client"
	"github.com/carbonwatch/carbon-intensity-client/pkg/intensity"
	"github.com/carbonwatch/carbon-intensity-client/pkg/target"
)

func newService(t *testing.T, mock *testutil.MockAPI, cfgFn func(*client.Config)) *intensity.Service {
	t.Helper()

	cfg := client.DefaultConfig()
	cfg.BaseURL = mock.URL()
	if cfgFn != nil {
		cfgFn(&cfg)
	}

	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	svc := intensity.NewService(c)
	svc.SetClock(func() time.Time {
		return time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

// TestMultiYearRange runs a ranged query spanning two year boundaries
// and checks that every emitted window is answered and merged.
func TestMultiYearRange(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	// Serve every ranged path with a single entry echoing the window
	// start, so the merged sequence mirrors the window sequence.
	served := int32(0)
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&served, 1)
		// Path: /regional/intensity/{from}/{to}/regionid/11
		from := r.URL.Path[len("/regional/intensity/") : len("/regional/intensity/")+17]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testutil.RangedBody(11, "South West England", "",
			testutil.Entry(from, from, 100))))
	}
	mock.SetCatchAll(handler)

	svc := newService(t, mock, nil)

	measurements, err := svc.Intensities(context.Background(), target.ForRegion(target.SouthWestEngland),
		"2021-01-15", "2023-02-01")
	if err != nil {
		t.Fatalf("Intensities failed: %v", err)
	}

	if int(atomic.LoadInt32(&served)) != len(measurements) {
		t.Errorf("served %d windows but merged %d measurements", served, len(measurements))
	}
	for i := 1; i < len(measurements); i++ {
		if measurements[i].Time.Before(measurements[i-1].Time) {
			t.Errorf("measurement %d out of order: %v after %v",
				i, measurements[i].Time, measurements[i-1].Time)
		}
	}

	// Two year-ends in the range: at least two windows were cut short.
	if int(served) < 52 {
		t.Errorf("served %d windows, want the full two-year fan-out", served)
	}
}

// TestWindowFailureAbortsAggregation flips one mid-range window to 503
// and checks that the whole call fails with no partial result.
func TestWindowFailureAbortsAggregation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	failing := "/regional/intensity/2022-07-09T00:01Z/2022-07-22T00:01Z/regionid/13"
	mock.SetCatchAll(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "maintenance"}`))
			return
		}
		w.Write([]byte(testutil.RangedBody(13, "London", "")))
	})

	svc := newService(t, mock, nil)

	measurements, err := svc.Intensities(context.Background(), target.ForRegion(target.London),
		"2022-06-13", "2022-09-01")
	if err == nil {
		t.Fatal("Intensities succeeded, want failure")
	}
	if measurements != nil {
		t.Errorf("got partial measurements alongside error: %+v", measurements)
	}

	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want wrapped 503 StatusError", err)
	}
}

// TestRetryAcrossPipeline enables retries and checks a transient 502 on
// one window heals without violating the merged result.
func TestRetryAcrossPipeline(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var flaky int32
	mock.SetCatchAll(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&flaky, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error": "transient"}`))
			return
		}
		w.Write([]byte(testutil.RangedBody(13, "London", "",
			testutil.Entry("2023-05-15T00:00Z", "2023-05-15T00:30Z", 140))))
	})

	svc := newService(t, mock, func(cfg *client.Config) {
		cfg.MaxRetries = 2
		cfg.InitialBackoff = time.Millisecond
		cfg.MaxBackoff = 5 * time.Millisecond
	})

	measurements, err := svc.Intensities(context.Background(), target.ForRegion(target.London),
		"2023-05-15", "2023-05-16")
	if err != nil {
		t.Fatalf("Intensities failed despite retries: %v", err)
	}
	if len(measurements) != 1 || measurements[0].Forecast != 140 {
		t.Errorf("measurements = %+v, want single 140 entry", measurements)
	}
}

// TestCurrentAndRangeShareTransport runs both query styles against one
// client instance.
func TestCurrentAndRangeShareTransport(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/regional/regionid/13", testutil.MockResponse{
		StatusCode: 200,
		Body: testutil.GroupsBody(testutil.RegionGroup(13, "London",
			testutil.Entry("2023-06-01T11:30Z", "2023-06-01T12:00Z", 188))),
	})
	mock.SetResponse("/regional/intensity/2023-05-15T00:01Z/2023-05-16T00:01Z/regionid/13",
		testutil.MockResponse{
			StatusCode: 200,
			Body: testutil.RangedBody(13, "London", "",
				testutil.Entry("2023-05-15T00:00Z", "2023-05-15T00:30Z", 120)),
		})

	svc := newService(t, mock, nil)

	value, err := svc.CurrentIntensity(context.Background(), target.ForRegion(target.London))
	if err != nil {
		t.Fatalf("CurrentIntensity failed: %v", err)
	}
	if value != 188 {
		t.Errorf("CurrentIntensity = %d, want 188", value)
	}

	measurements, err := svc.Intensities(context.Background(), target.ForRegion(target.London),
		"2023-05-15", "2023-05-16")
	if err != nil {
		t.Fatalf("Intensities failed: %v", err)
	}
	if len(measurements) != 1 || measurements[0].Forecast != 120 {
		t.Errorf("measurements = %+v, want single 120 entry", measurements)
	}
}
