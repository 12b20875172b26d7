package domain

import (
	"slices"
	"strings"
)

// AddCustomActivity inserts a zeroed activity under slug. An existing slug is
// left untouched. An empty slug is derived from name.
func AddCustomActivity(d Document, slug, name string, template Template) (Document, bool) {
	if blank(slug) {
		slug = name
	}
	slug = Slugify(slug)
	if slug == "" {
		return d, false
	}
	if _, exists := d.CustomActivities[slug]; exists {
		return d, false
	}
	if !template.Valid() {
		template = TemplateNone
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = slug
	}
	next := d
	next.CustomActivities = cloneMap(d.CustomActivities)
	next.CustomActivities[slug] = CustomActivity{Name: name, Template: template, Data: NewRecord()}
	return next, true
}

func DeleteCustomActivity(d Document, slug string) (Document, bool) {
	if _, ok := d.CustomActivities[slug]; !ok {
		return d, false
	}
	next := d
	next.CustomActivities = cloneMap(d.CustomActivities)
	delete(next.CustomActivities, slug)
	return next, true
}

// HideActivity removes a core activity from navigation; its data is kept.
func HideActivity(d Document, key CoreKey) (Document, bool) {
	if !key.Valid() || d.HiddenActivities[key] {
		return d, false
	}
	next := d
	next.HiddenActivities = cloneMap(d.HiddenActivities)
	next.HiddenActivities[key] = true
	return next, true
}

func RestoreActivity(d Document, key CoreKey) (Document, bool) {
	if _, ok := d.HiddenActivities[key]; !ok {
		return d, false
	}
	next := d
	next.HiddenActivities = cloneMap(d.HiddenActivities)
	delete(next.HiddenActivities, key)
	return next, true
}

func SetMinimalMode(d Document, on bool) (Document, bool) {
	if d.MinimalMode == on {
		return d, false
	}
	next := d
	next.MinimalMode = on
	return next, true
}

// UpdateDailyActivityName renames an entry of the legacy names list.
func UpdateDailyActivityName(d Document, i int, name string) (Document, bool) {
	if i < 0 || i >= len(d.DailyActivityNames) || blank(name) {
		return d, false
	}
	next := d
	next.DailyActivityNames = slices.Clone(d.DailyActivityNames)
	next.DailyActivityNames[i] = strings.TrimSpace(name)
	return next, true
}

func AddDailyActivity(d Document, name, category string, env Env) (Document, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return d, false
	}
	next := d
	next.DailyActivityList = append(slices.Clone(d.DailyActivityList), DailyActivity{
		ID:       env.newID(),
		Name:     name,
		Category: strings.TrimSpace(category),
	})
	return next, true
}

func RemoveDailyActivity(d Document, id string) (Document, bool) {
	i := slices.IndexFunc(d.DailyActivityList, func(a DailyActivity) bool { return a.ID == id })
	if i < 0 {
		return d, false
	}
	next := d
	next.DailyActivityList = slices.Delete(slices.Clone(d.DailyActivityList), i, i+1)
	return next, true
}

func RenameDailyActivity(d Document, id, name string) (Document, bool) {
	i := slices.IndexFunc(d.DailyActivityList, func(a DailyActivity) bool { return a.ID == id })
	if i < 0 || blank(name) {
		return d, false
	}
	next := d
	next.DailyActivityList = slices.Clone(d.DailyActivityList)
	next.DailyActivityList[i].Name = strings.TrimSpace(name)
	return next, true
}
