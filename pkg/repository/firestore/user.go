package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const UsersCollection = "users"

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{
		client: client,
	}
}

// userDoc is the Firestore persistence model
type userDoc struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	LastLogin time.Time `firestore:"last_login"`
	Favorites []string  `firestore:"favorites"`
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, UsersCollection))
}

func (r *userRepository) toDoc(user *model.User) *userDoc {
	favorites := make([]string, len(user.Favorites))
	for i, id := range user.Favorites {
		favorites[i] = id.String()
	}
	return &userDoc{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		LastLogin: user.LastLogin.UTC(),
		Favorites: favorites,
	}
}

func (r *userRepository) fromDoc(doc *userDoc) *model.User {
	favorites := make([]model.ToolID, len(doc.Favorites))
	for i, id := range doc.Favorites {
		favorites[i] = model.ToolID(id)
	}
	return &model.User{
		ID:        model.UserID(doc.ID),
		Name:      doc.Name,
		Email:     doc.Email,
		LastLogin: doc.LastLogin,
		Favorites: favorites,
	}
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", id))
	}
	if doc.ID == "" {
		doc.ID = snap.Ref.ID
	}
	return r.fromDoc(&doc), nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user == nil || user.ID == "" {
		return goerr.New("user ID is required")
	}

	if _, err := r.collection().Doc(user.ID.String()).Set(ctx, r.toDoc(user)); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("id", user.ID))
	}
	return nil
}
