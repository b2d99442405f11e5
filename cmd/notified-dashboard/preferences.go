package main

import (
	"context"
	"os"

	"notified-dashboard/internal/dashboard"
	"notified-dashboard/internal/model"
)

// PreferencesCmd groups the preference subcommands.
type PreferencesCmd struct {
	List   PreferencesListCmd   `kong:"cmd,help='List all preferences.'"`
	Get    PreferencesGetCmd    `kong:"cmd,help='Show preferences for one user.'"`
	Create PreferencesCreateCmd `kong:"cmd,help='Create preferences for a user.'"`
	Update PreferencesUpdateCmd `kong:"cmd,help='Replace preferences for a user.'"`
	Delete PreferencesDeleteCmd `kong:"cmd,help='Delete preferences for a user.'"`
}

// PreferencesListCmd lists every preference.
type PreferencesListCmd struct{}

// Run lists preferences.
func (p *PreferencesListCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	prefs, err := c.Preferences(ctx)
	if err != nil {
		return report(r, dashboard.Classify("load preferences", "", err))
	}
	r.Preferences(prefs)
	r.Status(dashboard.Success("Loaded %d preferences", len(prefs)))
	return nil
}

// PreferencesGetCmd shows one user's preferences.
type PreferencesGetCmd struct {
	UserID string `kong:"arg,help='User ID.'"`
}

// Run fetches and prints the preference.
func (p *PreferencesGetCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	pref, err := c.Preference(ctx, p.UserID)
	if err != nil {
		return report(r, dashboard.Classify("load preferences", "User not found. You can create new preferences.", err))
	}
	r.Preferences([]model.UserPreference{*pref})
	return nil
}

// PreferenceFlags are the editable fields shared by create and update.
type PreferenceFlags struct {
	UserID     string   `kong:"arg,help='User ID.'"`
	Email      string   `kong:"help='Email address.'"`
	Phone      string   `kong:"help='Phone number.'"`
	Categories []string `kong:"short='C',sep=',',help='Categories, comma separated (e.g. SPORTS,NEWS).'"`
	Channels   []string `kong:"sep=',',help='Enabled channels, comma separated (EMAIL,WHATSAPP,SMS,APP).'"`
}

// preference validates the flags into a UserPreference. At least one
// category is required.
func (f *PreferenceFlags) preference() (*model.UserPreference, *dashboard.Status) {
	categories, err := model.ParseSet(model.Categories, f.Categories)
	if err != nil {
		return nil, &dashboard.Status{Kind: dashboard.KindError, Message: err.Error()}
	}
	if len(categories) == 0 {
		return nil, &dashboard.Status{Kind: dashboard.KindError, Message: "Please select at least one preference category"}
	}
	channels, err := model.ParseSet(model.Channels, f.Channels)
	if err != nil {
		return nil, &dashboard.Status{Kind: dashboard.KindError, Message: err.Error()}
	}
	if channels == nil {
		channels = []model.Channel{}
	}

	return &model.UserPreference{
		UserID:          f.UserID,
		Email:           f.Email,
		PhoneNumber:     f.Phone,
		Preferences:     categories,
		EnabledChannels: channels,
	}, nil
}

// PreferencesCreateCmd creates preferences.
type PreferencesCreateCmd struct {
	PreferenceFlags `kong:"embed"`
}

// Run creates the preference.
func (p *PreferencesCreateCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	pref, st := p.preference()
	if st != nil {
		return report(r, *st)
	}
	if _, err := c.CreatePreference(ctx, pref); err != nil {
		return report(r, dashboard.Classify("create preference", "", err))
	}
	r.Status(dashboard.Success("Preference created successfully!"))
	return nil
}

// PreferencesUpdateCmd replaces preferences.
type PreferencesUpdateCmd struct {
	PreferenceFlags `kong:"embed"`
}

// Run updates the preference.
func (p *PreferencesUpdateCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	pref, st := p.preference()
	if st != nil {
		return report(r, *st)
	}
	if _, err := c.UpdatePreference(ctx, pref); err != nil {
		return report(r, dashboard.Classify("update preference", "User not found. Create the preference first.", err))
	}
	r.Status(dashboard.Success("Preference updated successfully!"))
	return nil
}

// PreferencesDeleteCmd deletes preferences.
type PreferencesDeleteCmd struct {
	UserID string `kong:"arg,help='User ID.'"`
}

// Run deletes the preference.
func (p *PreferencesDeleteCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.client()
	if err != nil {
		return err
	}
	r := dashboard.NewRenderer(os.Stdout)

	if err := c.DeletePreference(ctx, p.UserID); err != nil {
		return report(r, dashboard.Classify("delete preference", "", err))
	}
	r.Status(dashboard.Success("Preference deleted successfully!"))
	return nil
}
