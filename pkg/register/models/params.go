package models

type ListAssetsParams struct {
	FirstName      *string `query:"firstName"`
	LastName       *string `query:"lastName"`
	Hospital       *string `query:"hospital"`
	IncludeDeleted bool    `query:"includeDeleted"`
}

type AssetParams struct {
	ID string `path:"id"`
}

type LoginInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserInput struct {
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	HospitalID *uint  `json:"hospitalId"`
	RoleID     *uint  `json:"roleId"`
}

type UpdateUserInput struct {
	ID         uint    `path:"id"`
	Password   *string `json:"password"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	IsActive   *bool   `json:"isActive"`
	HospitalID *uint   `json:"hospitalId"`
	RoleID     *uint   `json:"roleId"`
}

type IDParams struct {
	ID uint `path:"id"`
}

type NameInput struct {
	Name string `json:"name" binding:"required"`
}

type UpdateNameInput struct {
	ID   uint   `path:"id"`
	Name string `json:"name" binding:"required"`
}

// Stats is the admin dashboard summary. RemoteAssets is -1 when the asset
// service could not be reached.
type Stats struct {
	Users        int64 `json:"users"`
	Hospitals    int64 `json:"hospitals"`
	Uploads      int64 `json:"uploads"`
	RemoteAssets int64 `json:"remoteAssets"`
}
