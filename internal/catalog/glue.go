package catalog

import (
	"context"

	"github.com/predictr-io/aws-glue-create-database/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// glueAPI is the slice of the Glue client this package calls, split out so
// tests can script responses without a real client.
type glueAPI interface {
	GetDatabase(ctx context.Context, in *glue.GetDatabaseInput, optFns ...func(*glue.Options)) (*glue.GetDatabaseOutput, error)
	CreateDatabase(ctx context.Context, in *glue.CreateDatabaseInput, optFns ...func(*glue.Options)) (*glue.CreateDatabaseOutput, error)
}

// GlueOptions configures the Glue-backed catalog. All fields are optional;
// empty values defer to the ambient AWS environment.
type GlueOptions struct {
	// CatalogID selects a non-default catalog scope (another account's
	// catalog). Empty means the caller's own account.
	CatalogID string
	Region    string
	// Endpoint overrides the service endpoint, e.g. for localstack.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// GlueCatalog implements Catalog on the AWS Glue Data Catalog.
type GlueCatalog struct {
	api       glueAPI
	catalogID string
	region    string
}

// NewGlue constructs a Glue-backed catalog from ambient AWS configuration,
// folding in any explicit region or static-credential overrides.
func NewGlue(ctx context.Context, o GlueOptions) (*GlueCatalog, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if o.Region != "" {
		opts = append(opts, awsconfig.WithRegion(o.Region))
	}
	if o.AccessKeyID != "" && o.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken)
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	client := glue.NewFromConfig(awsCfg, func(gopts *glue.Options) {
		if o.Endpoint != "" {
			gopts.BaseEndpoint = aws.String(o.Endpoint)
		}
	})
	return &GlueCatalog{api: client, catalogID: o.CatalogID, region: awsCfg.Region}, nil
}

// Region reports the region the client resolved, for identifier templating.
func (g *GlueCatalog) Region() string {
	return g.region
}

// Lookup checks for the database with GetDatabase. EntityNotFoundException
// maps to the expected-path NotFound state; anything else is a failure.
func (g *GlueCatalog) Lookup(ctx context.Context, name string) LookupResult {
	out, err := g.api.GetDatabase(ctx, &glue.GetDatabaseInput{
		Name:      aws.String(name),
		CatalogId: g.scope(),
	})
	if err != nil {
		var notFound *types.EntityNotFoundException
		if errors.As(err, &notFound) {
			return NotFound()
		}
		logRemoteError("GetDatabase", err)
		return Failed(errors.Wrapf(err, "get database %s", name))
	}
	if out.Database == nil {
		return Failed(errors.Errorf("get database %s: empty response", name))
	}
	return Found(&Database{
		Name:        aws.ToString(out.Database.Name),
		Description: aws.ToString(out.Database.Description),
		LocationURI: aws.ToString(out.Database.LocationUri),
		Parameters:  out.Database.Parameters,
	})
}

// Create issues a single CreateDatabase call. No retry; a failed create is
// fatal for the invocation.
func (g *GlueCatalog) Create(ctx context.Context, db Database) error {
	input := &types.DatabaseInput{
		Name:       aws.String(db.Name),
		Parameters: db.Parameters,
	}
	if db.Description != "" {
		input.Description = aws.String(db.Description)
	}
	if db.LocationURI != "" {
		input.LocationUri = aws.String(db.LocationURI)
	}
	_, err := g.api.CreateDatabase(ctx, &glue.CreateDatabaseInput{
		CatalogId:     g.scope(),
		DatabaseInput: input,
	})
	if err != nil {
		logRemoteError("CreateDatabase", err)
		return errors.Wrapf(err, "create database %s", db.Name)
	}
	return nil
}

func (g *GlueCatalog) scope() *string {
	if g.catalogID == "" {
		return nil
	}
	return aws.String(g.catalogID)
}

// logRemoteError surfaces the structured detail the SDK attaches to a
// failure (error code, HTTP status, request id) as diagnostic log lines.
// The detail never reaches the structured outputs.
func logRemoteError(op string, err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		util.Warnf("%s failed: code=%s message=%s", op, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		util.Warnf("%s failed: status=%d request_id=%s", op, respErr.HTTPStatusCode(), respErr.ServiceRequestID())
	}
}
