package database

import (
	"context"
	"fmt"

	"movie-reviews/pkg/utils"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// InitFirestore creates the document store client. Connection pooling and
// retries are handled inside the client; we only wire credentials here.
func InitFirestore(ctx context.Context, config utils.FirebaseConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, config.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return client, nil
}
