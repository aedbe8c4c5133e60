package models

// Profile is the public account information of a user
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Institution string `json:"institution,omitempty"`
	Course      string `json:"course,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type ProfilePatch struct {
	Username    Optional[string]
	Name        Optional[string]
	Email       Optional[string]
	Institution Optional[string]
	Course      Optional[string]
	AvatarURL   Optional[string]
	Bio         Optional[string]
}

func (p ProfilePatch) IsEmpty() bool {
	return !p.Username.IsSet() && !p.Name.IsSet() && !p.Email.IsSet() && !p.Institution.IsSet() &&
		!p.Course.IsSet() && !p.AvatarURL.IsSet() && !p.Bio.IsSet()
}

// Apply returns profile with every set field of p applied.
func (p ProfilePatch) Apply(profile Profile) Profile {
	profile.Username = p.Username.OrElse(profile.Username)
	profile.Name = p.Name.OrElse(profile.Name)
	profile.Email = p.Email.OrElse(profile.Email)
	profile.Institution = p.Institution.OrElse(profile.Institution)
	profile.Course = p.Course.OrElse(profile.Course)
	profile.AvatarURL = p.AvatarURL.OrElse(profile.AvatarURL)
	profile.Bio = p.Bio.OrElse(profile.Bio)
	return profile
}
