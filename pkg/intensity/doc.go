// Package intensity retrieves carbon intensity forecasts from the
// Carbon Intensity API for a region, postcode area or the national
// aggregate.
//
// Ranged queries are decomposed into API-acceptable windows by
// pkg/timerange and fetched concurrently, one request per window. The
// aggregation is all-or-nothing: every window must succeed, the first
// failure aborts the whole call and no partial result is returned.
//
// Example usage:
//
//	c, err := client.New(client.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	svc := intensity.NewService(c)
//
//	// Current value for a postcode area.
//	value, err := svc.CurrentIntensity(ctx, target.ForPostcode("BS7"))
//
//	// Half-hourly forecasts over a date range.
//	measurements, err := svc.Intensities(ctx, target.ForRegion(target.London),
//		"2023-05-15", "2023-05-20")
package intensity
