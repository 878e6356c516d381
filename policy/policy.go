// Package policy decides what each role may do. Capabilities live in an
// embedded casbin RBAC model; ownership is supplied by the caller, since it
// depends on the row being acted upon.
package policy

import (
	_ "embed"
	"fmt"
	"strings"

	"blog-api/models"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

type Resource string

const (
	ResourceBlog          Resource = "blog"
	ResourceCategory      Resource = "category"
	ResourceTag           Resource = "tag"
	ResourceComment       Resource = "comment"
	ResourceReaction      Resource = "reaction"
	ResourceUser          Resource = "user"
	ResourceNotification  Resource = "notification"
	ResourceContact       Resource = "contact"
	ResourceAdvertisement Resource = "advertisement"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
	ActionList    Action = "list"
)

// PublishPolicy selects who may move a blog between draft and published.
type PublishPolicy string

const (
	PublishAdminOnly    PublishPolicy = "admin_only"
	PublishOwnerOrAdmin PublishPolicy = "owner_or_admin"
)

type Policy struct {
	enforcer *casbin.SyncedEnforcer
	publish  PublishPolicy
}

func New(publish PublishPolicy) (*Policy, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := loadPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	switch publish {
	case PublishAdminOnly:
	case PublishOwnerOrAdmin:
		if _, err := enforcer.AddPolicy(string(models.RoleAuthor), string(ResourceBlog), scoped(ActionPublish, true)); err != nil {
			return nil, fmt.Errorf("failed to add publish policy: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown publish policy %q", publish)
	}

	return &Policy{enforcer: enforcer, publish: publish}, nil
}

func (p *Policy) PublishPolicy() PublishPolicy {
	return p.publish
}

// Can reports whether role may perform action on any row of resource.
func (p *Policy) Can(role models.UserRole, resource Resource, action Action) bool {
	return p.enforce(role, resource, scoped(action, false))
}

// CanOnObject additionally grants the ":own" capability when isOwner is set.
func (p *Policy) CanOnObject(role models.UserRole, resource Resource, action Action, isOwner bool) bool {
	if p.Can(role, resource, action) {
		return true
	}
	return isOwner && p.enforce(role, resource, scoped(action, true))
}

// Authorize is CanOnObject for an actor, returning the error the API surfaces:
// unauthorized for anonymous callers, forbidden otherwise.
func (p *Policy) Authorize(actor *models.Actor, resource Resource, action Action, ownerID uint) error {
	if !actor.Authenticated() {
		return models.ErrorUnauthorized{Message: "Authentication credentials were not provided"}
	}
	if p.CanOnObject(actor.Role, resource, action, ownerID != 0 && actor.Owns(ownerID)) {
		return nil
	}
	return models.ErrorForbidden{Message: "You do not have permission to perform this action"}
}

func (p *Policy) enforce(role models.UserRole, resource Resource, act string) bool {
	if !role.Valid() {
		return false
	}
	allowed, err := p.enforcer.Enforce(string(role), string(resource), act)
	return err == nil && allowed
}

func scoped(action Action, own bool) string {
	if own {
		return string(action) + ":own"
	}
	return string(action) + ":any"
}

// loadPolicy parses the embedded CSV: "p, sub, obj, act" and "g, role, parent".
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}
