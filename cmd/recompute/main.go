// Command recompute runs an on-demand status sweep over one organization's
// certificate records. There is no internal scheduler; run this from cron or
// by hand when statuses need to catch up with the calendar.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"certtrack-backend/internal/certificates"
	"certtrack-backend/internal/shared/config"
	"certtrack-backend/internal/shared/storage/db"
)

func main() {
	orgID := flag.String("org", "", "organization id to sweep")
	all := flag.Bool("all", false, "sweep every organization with records")
	flag.Parse()
	if *all == (*orgID != "") {
		log.Fatal("exactly one of -org or -all is required")
	}

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer sqlDB.Close()

	svc := &certificates.Service{Repo: &certificates.PGRepo{DB: sqlDB}}
	asOf := time.Now().UTC()

	if *all {
		if err := svc.RecomputeAllOrgs(ctx, asOf); err != nil {
			log.Fatalf("recompute all orgs: %v", err)
		}
		log.Printf("recompute complete (all orgs)")
		return
	}

	if err := svc.RecomputeAllForOrg(ctx, *orgID, asOf); err != nil {
		log.Fatalf("recompute org=%s: %v", *orgID, err)
	}
	log.Printf("recompute complete org=%s", *orgID)
}
