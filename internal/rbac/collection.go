package rbac

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// collection holds the load-modify-save cycle shared by users, roles and permissions.
// Every mutating method keeps mu for the whole cycle including the audit append.
type collection[T any] struct {
	mu      sync.Mutex
	storage fiber.Storage
	log     *audit.Writer
	key     string

	resource       string // audit resource, e.g. "User"
	noun           string // singular, lower case
	nouns          string // plural, lower case
	updateVerb     string // "Updated" or "Modified"
	deleteSeverity models.Severity
	errNotFound    error

	idOf     func(T) uint64
	setID    func(*T, uint64)
	label    func(T) string          // identifies the item in audit details
	statusOf func(*T) *models.Status // nil for collections without status
}

// List returns the stored collection in stored order.
func (c *collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return store.Load[T](c.storage, c.key)
}

// Get returns the item with id.
func (c *collection[T]) Get(id uint64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := store.Load[T](c.storage, c.key)

	i := c.indexOf(items, id)
	if i < 0 {
		var zero T
		return zero, c.errNotFound
	}

	return items[i], nil
}

func (c *collection[T]) indexOf(items []T, id uint64) int {
	return slices.IndexFunc(items, func(item T) bool { return c.idOf(item) == id })
}

func (c *collection[T]) save(items []T) error {
	return store.Save(c.storage, c.key, items)
}

func (c *collection[T]) record(action, details string, severity models.Severity) error {
	if _, err := c.log.Append(action, c.resource, details, severity); err != nil {
		return fmt.Errorf("audit %s %s: %w", action, c.noun, err)
	}

	return nil
}

func (c *collection[T]) create(draft T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := store.Load[T](c.storage, c.key)
	c.setID(&draft, store.NextID(items, c.idOf))
	items = append(items, draft)

	if err := c.save(items); err != nil {
		var zero T
		return zero, err
	}

	details := fmt.Sprintf("Created new %s: %s", c.noun, c.label(draft))

	return draft, c.record(audit.ActionCreate, details, models.SeverityInfo)
}

func (c *collection[T]) update(id uint64, apply func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	items := store.Load[T](c.storage, c.key)

	i := c.indexOf(items, id)
	if i < 0 {
		return zero, c.errNotFound
	}

	apply(&items[i])
	c.setID(&items[i], id)

	if err := c.save(items); err != nil {
		return zero, err
	}

	details := fmt.Sprintf("%s %s: %s", c.updateVerb, c.noun, c.label(items[i]))

	return items[i], c.record(audit.ActionUpdate, details, models.SeverityWarning)
}

// remove deletes the items whose id is in ids. check sees the matched items before
// anything is written and may veto the deletion. A single delete that matches
// nothing does not write or audit.
func (c *collection[T]) remove(ids []uint64, bulk bool, check func([]T) error) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := store.Load[T](c.storage, c.key)
	kept := make([]T, 0, len(items))
	removed := make([]T, 0, len(ids))

	for _, item := range items {
		if slices.Contains(ids, c.idOf(item)) {
			removed = append(removed, item)
			continue
		}

		kept = append(kept, item)
	}

	if !bulk && len(removed) == 0 {
		return nil
	}

	if check != nil {
		if err := check(removed); err != nil {
			return err
		}
	}

	if err := c.save(kept); err != nil {
		return err
	}

	if bulk {
		details := "Deleted " + c.count(len(ids))
		return c.record(audit.ActionBulkDelete, details, models.SeverityCritical)
	}

	details := fmt.Sprintf("Deleted %s: %s", c.noun, c.label(removed[0]))

	return c.record(audit.ActionDelete, details, c.deleteSeverity)
}

func (c *collection[T]) bulkSetStatus(ids []uint64, status models.Status) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := store.Load[T](c.storage, c.key)
	for i := range items {
		if slices.Contains(ids, c.idOf(items[i])) {
			*c.statusOf(&items[i]) = status
		}
	}

	if err := c.save(items); err != nil {
		return err
	}

	if status == models.StatusActive {
		return c.record(audit.ActionBulkActivate, "Activated "+c.count(len(ids)), models.SeverityInfo)
	}

	return c.record(audit.ActionBulkDeactivate, "Deactivated "+c.count(len(ids)), models.SeverityWarning)
}

func (c *collection[T]) toggle(id uint64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	items := store.Load[T](c.storage, c.key)

	i := c.indexOf(items, id)
	if i < 0 {
		return zero, c.errNotFound
	}

	status := c.statusOf(&items[i])
	*status = status.Toggle()

	if err := c.save(items); err != nil {
		return zero, err
	}

	verb, severity := "Activated", models.SeverityInfo
	if *status == models.StatusInactive {
		verb, severity = "Deactivated", models.SeverityWarning
	}

	details := fmt.Sprintf("%s %s: %s", verb, c.noun, c.label(items[i]))

	return items[i], c.record(audit.ActionStatusChange, details, severity)
}

// count renders "1 user" or "3 users".
func (c *collection[T]) count(n int) string {
	if n == 1 {
		return "1 " + c.noun
	}

	return fmt.Sprintf("%d %s", n, c.nouns)
}

// uniqueIDs drops duplicates keeping the first occurrence.
func uniqueIDs(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))

	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}
