// Command glue-create-database ensures a database exists in the AWS Glue
// Data Catalog. It is built to run as a GitHub Actions step but also works
// standalone with a YAML config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/predictr-io/aws-glue-create-database/internal/action"
	"github.com/predictr-io/aws-glue-create-database/internal/catalog"
	"github.com/predictr-io/aws-glue-create-database/internal/config"
	"github.com/predictr-io/aws-glue-create-database/internal/ensure"
	"github.com/predictr-io/aws-glue-create-database/internal/runinfo"
	"github.com/predictr-io/aws-glue-create-database/internal/util"

	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (reads action inputs when empty)")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	util.SetInvocationID(uuid.NewString()[:8])

	a := githubactions.New()
	if info := runinfo.FromEnv(); info != nil {
		util.Highlightf("ci: %s", info.Summary())
	}

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromAction(a)
	}
	if err != nil {
		fail(a, err)
	}
	util.Infof("ensuring glue database %s exists (if_not_exists=%t catalog_id=%q)", cfg.DatabaseName, cfg.IfNotExists, cfg.CatalogID)

	ctx := context.Background()
	cat, err := catalog.NewGlue(ctx, catalog.GlueOptions{
		CatalogID:       cfg.CatalogID,
		Region:          cfg.AWS.Region,
		Endpoint:        cfg.AWS.Endpoint,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		SessionToken:    cfg.AWS.SessionToken,
	})
	if err != nil {
		fail(a, err)
	}

	res, err := ensure.Ensure(ctx, cat, catalog.Database{
		Name:        cfg.DatabaseName,
		Description: cfg.Description,
		LocationURI: cfg.LocationURI,
		Parameters:  cfg.Parameters,
	}, ensure.Options{
		IfNotExists: cfg.IfNotExists,
		MaxAttempts: cfg.MaxAttempts,
		Delay:       time.Duration(cfg.PollDelayMs) * time.Millisecond,
	})
	if err != nil {
		fail(a, err)
	}

	out := action.Outputs{
		DatabaseName:  cfg.DatabaseName,
		DatabaseARN:   catalog.DatabaseARN(cfg.DatabaseName, cfg.CatalogID, cat.Region()),
		AlreadyExists: res.AlreadyExisted,
	}
	out.Write(a)
	util.Infof("done: arn=%s already_exists=%t", out.DatabaseARN, out.AlreadyExists)
}

// fail reports the single terminal failure message and exits non-zero.
// Supplementary diagnostics were already logged where the error arose.
func fail(a *githubactions.Action, err error) {
	a.Errorf("%s", err.Error())
	fmt.Fprintf(os.Stderr, "glue-create-database failed: %v\n", err)
	os.Exit(1)
}
