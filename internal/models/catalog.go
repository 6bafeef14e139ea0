package models

import (
	"sort"
	"strings"

	v "github.com/iudanet/goawx/internal/validation"
)

// Поля, которые сервер проставляет каждому ресурсу
func common() []Field {
	return []Field{
		{Name: "id", Kind: v.KindInteger, ReadOnly: true, Help: "Database ID"},
		{Name: "type", Kind: v.KindString, ReadOnly: true, Help: "Data type"},
		{Name: "url", Kind: v.KindString, ReadOnly: true, Help: "URL of the resource"},
		{Name: "related", Kind: v.KindJSON, ReadOnly: true, Help: "URLs of related resources"},
		{Name: "summary_fields", Kind: v.KindJSON, ReadOnly: true, Help: "Name/description of related resources"},
		{Name: "created", Kind: v.KindDateTime, ReadOnly: true, Help: "Creation timestamp"},
		{Name: "modified", Kind: v.KindDateTime, ReadOnly: true, Help: "Last modification timestamp"},
	}
}

func named(fields ...Field) []Field {
	base := []Field{
		{Name: "name", Kind: v.KindString, Required: true, Help: "Name of this resource"},
		{Name: "description", Kind: v.KindString, Help: "Optional description"},
	}
	return append(base, fields...)
}

func schema(name, singular string, fields ...Field) *Schema {
	return NewSchema(name, singular, append(common(), fields...)...)
}

var (
	Organizations = schema("organizations", "organization", named(
		Field{Name: "max_hosts", Kind: v.KindInteger, Help: "Maximum number of hosts allowed"},
		Field{Name: "custom_virtualenv", Kind: v.KindString, Help: "Custom Python virtualenv path"},
		Field{Name: "default_environment", Kind: v.KindID, Help: "Default execution environment"},
	)...)

	Teams = schema("teams", "team", named(
		Field{Name: "organization", Kind: v.KindID, Required: true},
	)...)

	Users = schema("users", "user",
		Field{Name: "username", Kind: v.KindString, Required: true},
		Field{Name: "first_name", Kind: v.KindString},
		Field{Name: "last_name", Kind: v.KindString},
		Field{Name: "email", Kind: v.KindString},
		Field{Name: "is_superuser", Kind: v.KindBoolean, Allowed: []any{true, false}},
		Field{Name: "is_system_auditor", Kind: v.KindBoolean, Allowed: []any{true, false}},
		Field{Name: "password", Kind: v.KindString, Help: "Write-only password"},
		Field{Name: "ldap_dn", Kind: v.KindString, ReadOnly: true},
		Field{Name: "last_login", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "external_account", Kind: v.KindString, ReadOnly: true},
	)

	Projects = schema("projects", "project", named(
		Field{Name: "local_path", Kind: v.KindString, ReadOnly: true, Help: "Path relative to PROJECTS_ROOT"},
		Field{Name: "scm_type", Kind: v.KindChoice, Allowed: []any{"", "git", "hg", "svn", "insights", "archive"}},
		Field{Name: "scm_url", Kind: v.KindString},
		Field{Name: "scm_branch", Kind: v.KindString},
		Field{Name: "scm_refspec", Kind: v.KindString},
		Field{Name: "scm_clean", Kind: v.KindBoolean},
		Field{Name: "scm_delete_on_update", Kind: v.KindBoolean},
		Field{Name: "scm_update_on_launch", Kind: v.KindBoolean},
		Field{Name: "scm_update_cache_timeout", Kind: v.KindInteger},
		Field{Name: "scm_revision", Kind: v.KindString, ReadOnly: true},
		Field{Name: "credential", Kind: v.KindID},
		Field{Name: "timeout", Kind: v.KindInteger},
		Field{Name: "organization", Kind: v.KindID},
		Field{Name: "allow_override", Kind: v.KindBoolean},
		Field{Name: "custom_virtualenv", Kind: v.KindString, ReadOnly: true},
		Field{Name: "last_job_run", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "last_job_failed", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "next_job_run", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "last_update_failed", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "last_updated", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "status", Kind: v.KindChoice, ReadOnly: true, Allowed: []any{
			"new", "pending", "waiting", "running", "successful", "failed",
			"error", "canceled", "never updated", "ok", "missing",
		}},
	)...)

	Inventories = schema("inventories", "inventory", named(
		Field{Name: "organization", Kind: v.KindID, Required: true},
		Field{Name: "kind", Kind: v.KindChoice, Allowed: []any{"", "smart"}},
		Field{Name: "host_filter", Kind: v.KindString},
		Field{Name: "variables", Kind: v.KindJSON},
		Field{Name: "insights_credential", Kind: v.KindID},
		Field{Name: "total_hosts", Kind: v.KindInteger, ReadOnly: true},
		Field{Name: "hosts_with_active_failures", Kind: v.KindInteger, ReadOnly: true},
		Field{Name: "total_groups", Kind: v.KindInteger, ReadOnly: true},
		Field{Name: "has_active_failures", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "has_inventory_sources", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "total_inventory_sources", Kind: v.KindInteger, ReadOnly: true},
		Field{Name: "inventory_sources_with_failures", Kind: v.KindInteger, ReadOnly: true},
		Field{Name: "pending_deletion", Kind: v.KindBoolean, ReadOnly: true},
	)...)

	Hosts = schema("hosts", "host", named(
		Field{Name: "inventory", Kind: v.KindID, Required: true},
		Field{Name: "enabled", Kind: v.KindBoolean},
		Field{Name: "instance_id", Kind: v.KindString},
		Field{Name: "variables", Kind: v.KindJSON},
		Field{Name: "has_active_failures", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "has_inventory_sources", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "last_job", Kind: v.KindID, ReadOnly: true},
		Field{Name: "last_job_host_summary", Kind: v.KindID, ReadOnly: true},
	)...)

	Groups = schema("groups", "group", named(
		Field{Name: "inventory", Kind: v.KindID, Required: true},
		Field{Name: "variables", Kind: v.KindJSON},
	)...)

	Labels = schema("labels", "label",
		Field{Name: "name", Kind: v.KindString, Required: true, Help: "Name of this label"},
		Field{Name: "organization", Kind: v.KindID, Required: true, Help: "Organization this label belongs to"},
	)

	Credentials = schema("credentials", "credential", named(
		Field{Name: "organization", Kind: v.KindID},
		Field{Name: "credential_type", Kind: v.KindID, Required: true},
		Field{Name: "inputs", Kind: v.KindJSON},
		Field{Name: "user", Kind: v.KindID},
		Field{Name: "team", Kind: v.KindID},
		Field{Name: "managed", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "kind", Kind: v.KindString, ReadOnly: true},
		Field{Name: "cloud", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "kubernetes", Kind: v.KindBoolean, ReadOnly: true},
	)...)

	JobTemplates = schema("job_templates", "job_template", named(
		Field{Name: "job_type", Kind: v.KindChoice, Allowed: []any{"run", "check"}},
		Field{Name: "inventory", Kind: v.KindID},
		Field{Name: "project", Kind: v.KindID},
		Field{Name: "playbook", Kind: v.KindString},
		Field{Name: "scm_branch", Kind: v.KindString},
		Field{Name: "forks", Kind: v.KindInteger},
		Field{Name: "limit", Kind: v.KindString},
		Field{Name: "verbosity", Kind: v.KindInteger, Allowed: []any{0, 1, 2, 3, 4, 5}},
		Field{Name: "extra_vars", Kind: v.KindJSON},
		Field{Name: "job_tags", Kind: v.KindString},
		Field{Name: "skip_tags", Kind: v.KindString},
		Field{Name: "timeout", Kind: v.KindInteger},
		Field{Name: "use_fact_cache", Kind: v.KindBoolean},
		Field{Name: "host_config_key", Kind: v.KindString},
		Field{Name: "ask_inventory_on_launch", Kind: v.KindBoolean},
		Field{Name: "ask_variables_on_launch", Kind: v.KindBoolean},
		Field{Name: "survey_enabled", Kind: v.KindBoolean},
		Field{Name: "become_enabled", Kind: v.KindBoolean},
		Field{Name: "diff_mode", Kind: v.KindBoolean},
		Field{Name: "allow_simultaneous", Kind: v.KindBoolean},
		Field{Name: "execution_environment", Kind: v.KindID},
		Field{Name: "last_job_run", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "last_job_failed", Kind: v.KindBoolean, ReadOnly: true},
		Field{Name: "next_job_run", Kind: v.KindDateTime, ReadOnly: true},
		Field{Name: "status", Kind: v.KindString, ReadOnly: true},
	)...)
)

var catalog = map[string]*Schema{}

func init() {
	for _, s := range []*Schema{
		Organizations, Teams, Users, Projects, Inventories,
		Hosts, Groups, Labels, Credentials, JobTemplates,
	} {
		catalog[s.Name] = s
		catalog[s.Singular] = s
	}
}

// Lookup находит схему по имени коллекции ("projects") или в единственном числе ("project").
// Дефисы допускаются вместо подчеркиваний ("job-templates").
func Lookup(name string) (*Schema, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	s, ok := catalog[key]
	if !ok {
		return nil, &UnknownResourceError{Name: name}
	}
	return s, nil
}

// Schemas returns every catalogued schema sorted by collection name.
func Schemas() []*Schema {
	seen := make(map[*Schema]bool)
	out := make([]*Schema, 0, len(catalog)/2)
	for _, s := range catalog {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
