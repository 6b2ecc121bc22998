package social

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/graph"
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Entity Types
// ============================================================================

// User represents a member of the network
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a post authored by exactly one user
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment represents a comment on exactly one post by exactly one user
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================================
// Node decoding
// ============================================================================

// Nodes arrive as property maps; these decoders are the only place that
// checks their shape.

func decodeUser(n graph.Node) (User, error) {
	d := decoder{node: n}
	u := User{
		ID:        n.ID,
		Name:      d.str(constants.PropName),
		Email:     d.str(constants.PropEmail),
		CreatedAt: d.timestamp(constants.PropCreatedAt),
	}
	return u, d.err
}

func decodePost(n graph.Node) (Post, error) {
	d := decoder{node: n}
	p := Post{
		ID:        n.ID,
		Title:     d.str(constants.PropTitle),
		Content:   d.str(constants.PropContent),
		CreatedAt: d.timestamp(constants.PropCreatedAt),
	}
	return p, d.err
}

func decodeComment(n graph.Node) (Comment, error) {
	d := decoder{node: n}
	c := Comment{
		ID:        n.ID,
		Content:   d.str(constants.PropContent),
		CreatedAt: d.timestamp(constants.PropCreatedAt),
	}
	return c, d.err
}

func decodeAll[T any](nodes []graph.Node, decode func(graph.Node) (T, error)) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		v, err := decode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decoder keeps the first error so callers can read every field and check once
type decoder struct {
	node graph.Node
	err  error
}

func (d *decoder) fail(key, want string) {
	if d.err == nil {
		d.err = fmt.Errorf("malformed %s node %s: property %q is not %s", d.node.Label, d.node.ID, key, want)
	}
}

func (d *decoder) str(key string) string {
	s, ok := d.node.Props[key].(string)
	if !ok {
		d.fail(key, "a string")
	}
	return s
}

func (d *decoder) timestamp(key string) time.Time {
	switch v := d.node.Props[key].(type) {
	case float64:
		return fromEpochSeconds(v)
	case int64:
		return time.Unix(v, 0).UTC()
	case int:
		return time.Unix(int64(v), 0).UTC()
	}
	d.fail(key, "a timestamp")
	return time.Time{}
}

// created_at is persisted as float seconds since the epoch

func toEpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpochSeconds(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(math.Round(frac*float64(time.Second)))).UTC()
}

// ============================================================================
// Validation
// ============================================================================

// requireFields fails on the first empty value, in argument order
func requireFields(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return apperrors.NewValidation(f[0])
		}
	}
	return nil
}

func field(name, value string) [2]string {
	return [2]string{name, value}
}

// ============================================================================
// Ordering
// ============================================================================

// byCreation orders results oldest first, ties broken by id
func byCreation[T any](items []T, key func(T) (time.Time, string)) {
	slices.SortFunc(items, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		return strings.Compare(ia, ib)
	})
}

func userKey(u User) (time.Time, string)       { return u.CreatedAt, u.ID }
func postKey(p Post) (time.Time, string)       { return p.CreatedAt, p.ID }
func commentKey(c Comment) (time.Time, string) { return c.CreatedAt, c.ID }
