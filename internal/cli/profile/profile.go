package profile

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/models"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" default:"1" help:"Show your profile."`
	Edit ProfileEditCmd `cmd:"" help:"Edit your profile."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	p, err := ctx.Store.GetProfile(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Email:       %s\n", p.Email)
	printOptional("Username", p.Username)
	printOptional("Institution", p.Institution)
	printOptional("Course", p.Course)
	printOptional("Avatar", p.AvatarURL)
	printOptional("Bio", p.Bio)
	return nil
}

func printOptional(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-12s %s\n", label+":", value)
}

type ProfileEditCmd struct {
	Username    *string `help:"New username."`
	Name        *string `help:"New display name."`
	Email       *string `help:"New contact email."`
	Institution *string `help:"Institution you study at."`
	Course      *string `help:"Course you are enrolled in."`
	AvatarURL   *string `help:"Avatar image URL." name:"avatar-url"`
	Bio         *string `help:"Short bio."`
}

func (c *ProfileEditCmd) patch() models.ProfilePatch {
	var p models.ProfilePatch
	set := func(dst *models.Optional[string], v *string) {
		if v != nil {
			*dst = models.Some(*v)
		}
	}
	set(&p.Username, c.Username)
	set(&p.Name, c.Name)
	set(&p.Email, c.Email)
	set(&p.Institution, c.Institution)
	set(&p.Course, c.Course)
	set(&p.AvatarURL, c.AvatarURL)
	set(&p.Bio, c.Bio)
	return p
}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	patch := c.patch()
	if patch.IsEmpty() {
		return fmt.Errorf("no changes specified")
	}

	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	p, err := ctx.Store.UpdateProfile(bg, user.ID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated profile: %s <%s>\n", p.Name, p.Email)
	return nil
}
