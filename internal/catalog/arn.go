package catalog

import (
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// DatabaseARN builds the database's resource identifier by template:
//
//	arn:aws:glue:<region>:<account>:database/<name>
//
// The account is the explicit catalog id when one was given, else the
// ambient AWS_ACCOUNT_ID, else a wildcard. The region falls back to the
// ambient region variables when the client resolved none. The identifier is
// deliberately templated rather than read back from the service.
func DatabaseARN(name, catalogID, region string) string {
	account := catalogID
	if account == "" {
		account = strings.TrimSpace(os.Getenv("AWS_ACCOUNT_ID"))
	}
	if account == "" {
		account = "*"
	}
	if region == "" {
		region = envFirst("AWS_REGION", "AWS_DEFAULT_REGION")
	}
	return arn.ARN{
		Partition: "aws",
		Service:   "glue",
		Region:    region,
		AccountID: account,
		Resource:  "database/" + name,
	}.String()
}

func envFirst(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}
