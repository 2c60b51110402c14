package user

// ListUserRequestDto espelha a query string de GET /list. Booleanos ausentes
// ficam nil e não filtram.
type ListUserRequestDto struct {
	SystemCode  string `form:"system_code"`
	Username    string `form:"username"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	IsStaff     *bool  `form:"is_staff"`
	IsActive    *bool  `form:"is_active"`
	IsSuperuser *bool  `form:"is_superuser"`
	RoleID      *uint  `form:"role_id"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"page_size,default=10" binding:"min=1,max=100"`
}

func (r ListUserRequestDto) Filter() ListFilter {
	return ListFilter{
		SystemCode:  r.SystemCode,
		Username:    r.Username,
		Email:       r.Email,
		Phone:       r.Phone,
		IsStaff:     r.IsStaff,
		IsActive:    r.IsActive,
		IsSuperuser: r.IsSuperuser,
		RoleID:      r.RoleID,
	}
}
