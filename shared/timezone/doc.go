// Package timezone holds the location booking dates and cancellation windows are evaluated in.
//
// Call Init once at startup with APP_TIMEZONE. Until then every helper works in UTC:
//
//	if err := timezone.Init(cfg.App.Timezone); err != nil {
//		log.Fatal().Err(err).Msg("invalid timezone")
//	}
//
//	startsAt, _ := booking.StartsAt(timezone.GetLocation())
package timezone
