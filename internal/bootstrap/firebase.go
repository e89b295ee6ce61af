package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/studiofolio/portfolio-backend/config"
)

// Firebase bundles the Admin SDK clients the application needs: token
// verification and the Firestore document store.
type Firebase struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitializeFirebase initializes the Firebase Admin SDK. When no credentials
// path is configured the SDK falls back to application default credentials
// (or the Firestore emulator, if FIRESTORE_EMULATOR_HOST is set).
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &Firebase{Auth: authClient, Firestore: firestoreClient}, nil
}
