package app

import (
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/cfstream"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/gcs"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/mux"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/phonepe"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/razorpaygw"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/redisstore"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/vimeo"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

// Clients holds every external integration. The provider clients are always
// constructed; credential checks happen per-call so a missing key degrades
// that provider, not startup. Bucket, redis and razorpay construction can
// fail and the caller decides which of those are fatal.
type Clients struct {
	Mux      *mux.Client
	Vimeo    *vimeo.Client
	CFStream *cfstream.Client
	PhonePe  *phonepe.Client

	Bucket   gcs.BucketService
	Sessions redisstore.SessionStore
	Razorpay razorpaygw.OrderCreator
}

func wireClients(log *logger.Logger) (Clients, error) {
	clients := Clients{
		Mux:      mux.NewClient(log, mux.ResolveConfigFromEnv()),
		Vimeo:    vimeo.NewClient(log, vimeo.ResolveConfigFromEnv()),
		CFStream: cfstream.NewClient(log, cfstream.ResolveConfigFromEnv()),
		PhonePe:  phonepe.NewClient(log, phonepe.ResolveConfigFromEnv()),
	}

	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService; uploads disabled", "error", err)
	} else {
		clients.Bucket = bucket
	}

	sessions, err := redisstore.NewSessionStore(log)
	if err != nil {
		// No session store means no admin logins at all.
		return Clients{}, err
	}
	clients.Sessions = sessions

	razorpay, err := razorpaygw.NewClient(log)
	if err != nil {
		log.Warn("Could not init Razorpay client; razorpay orders disabled", "error", err)
	} else {
		clients.Razorpay = razorpay
	}

	return clients, nil
}
