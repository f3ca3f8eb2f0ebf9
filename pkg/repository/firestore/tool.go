package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/interfaces"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ToolsCollection = "tools"

	// Maximum document references per GetAll
	firestoreGetAllLimit = 30
)

type toolRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ToolRepository = &toolRepository{}

func newToolRepository(client *firestore.Client) *toolRepository {
	return &toolRepository{
		client: client,
	}
}

// toolDoc is the Firestore persistence model
type toolDoc struct {
	ID          string     `firestore:"id"`
	Name        string     `firestore:"name"`
	Category    string     `firestore:"category"`
	Description string     `firestore:"description"`
	Kind        string     `firestore:"kind"`
	UsageCount  int64      `firestore:"usage_count"`
	LastUsed    *time.Time `firestore:"last_used"`
}

func (r *toolRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, ToolsCollection))
}

func (r *toolRepository) fromDoc(doc *toolDoc) *model.Tool {
	tool := &model.Tool{
		ID:          model.ToolID(doc.ID),
		Name:        doc.Name,
		Category:    doc.Category,
		Description: doc.Description,
		Kind:        types.ToolKind(doc.Kind),
		UsageCount:  doc.UsageCount,
	}
	if doc.LastUsed != nil {
		lastUsed := doc.LastUsed.UTC()
		tool.LastUsed = &lastUsed
	}
	return tool
}

func (r *toolRepository) decode(snap *firestore.DocumentSnapshot) (*model.Tool, error) {
	var doc toolDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode tool", goerr.V("doc_id", snap.Ref.ID))
	}
	if doc.ID == "" {
		doc.ID = snap.Ref.ID
	}
	return r.fromDoc(&doc), nil
}

func (r *toolRepository) Get(ctx context.Context, id model.ToolID) (*model.Tool, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "tool not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get tool", goerr.V("id", id))
	}
	return r.decode(snap)
}

func (r *toolRepository) GetMany(ctx context.Context, ids []model.ToolID) ([]*model.Tool, error) {
	seen := make(map[model.ToolID]bool, len(ids))
	unique := make([]model.ToolID, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	tools := make([]*model.Tool, 0, len(unique))
	for i := 0; i < len(unique); i += firestoreGetAllLimit {
		end := min(i+firestoreGetAllLimit, len(unique))
		batch := unique[i:end]

		refs := make([]*firestore.DocumentRef, len(batch))
		for j, id := range batch {
			refs[j] = r.collection().Doc(id.String())
		}

		snaps, err := r.client.GetAll(ctx, refs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to batch get tools", goerr.V("count", len(batch)))
		}

		for _, snap := range snaps {
			if snap == nil || !snap.Exists() {
				continue
			}
			tool, err := r.decode(snap)
			if err != nil {
				return nil, err
			}
			tools = append(tools, tool)
		}
	}

	return tools, nil
}

func (r *toolRepository) list(ctx context.Context, iter *firestore.DocumentIterator) ([]*model.Tool, error) {
	defer iter.Stop()

	tools := []*model.Tool{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tools")
		}

		tool, err := r.decode(snap)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func (r *toolRepository) FindByKind(ctx context.Context, kind types.ToolKind) (*model.Tool, error) {
	// Ordering is done here: an equality filter plus OrderBy on another field
	// would need one more composite index.
	tools, err := r.list(ctx, r.collection().Where("kind", "==", kind.String()).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find tool by kind", goerr.V("kind", kind))
	}
	if len(tools) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "tool not found", goerr.V("kind", kind))
	}

	found := tools[0]
	for _, tool := range tools[1:] {
		if tool.ID < found.ID {
			found = tool
		}
	}
	return found, nil
}

func (r *toolRepository) List(ctx context.Context) ([]*model.Tool, error) {
	return r.list(ctx, r.collection().Documents(ctx))
}

func (r *toolRepository) ListRecentlyUsed(ctx context.Context, limit int) ([]*model.Tool, error) {
	// The range filter drops documents whose last_used is null or missing.
	// Requires the (last_used DESC, id ASC) composite index applied by migrate.
	q := r.collection().
		Where("last_used", ">", time.Unix(0, 0)).
		OrderBy("last_used", firestore.Desc).
		OrderBy("id", firestore.Asc).
		Limit(limit)

	tools, err := r.list(ctx, q.Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recently used tools", goerr.V("limit", limit))
	}
	return tools, nil
}

func (r *toolRepository) Put(ctx context.Context, tool *model.Tool) error {
	if tool == nil || tool.ID == "" {
		return goerr.New("tool ID is required")
	}

	// Merge only catalog fields so existing usage counters survive a re-seed
	data := map[string]any{
		"id":          tool.ID.String(),
		"name":        tool.Name,
		"category":    tool.Category,
		"description": tool.Description,
		"kind":        tool.Kind.String(),
	}
	if _, err := r.collection().Doc(tool.ID.String()).Set(ctx, data, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to put tool", goerr.V("id", tool.ID))
	}
	return nil
}

func (r *toolRepository) IncrementUsage(ctx context.Context, id model.ToolID, at time.Time) error {
	// Update fails with NotFound on a missing document, so nothing is created
	_, err := r.collection().Doc(id.String()).Update(ctx, []firestore.Update{
		{Path: "usage_count", Value: firestore.Increment(1)},
		{Path: "last_used", Value: at.UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "tool not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to increment tool usage", goerr.V("id", id))
	}
	return nil
}
