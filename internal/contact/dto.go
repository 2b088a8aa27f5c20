// AngelaMos | 2026
// dto.go

package contact

type ContactNumberInput struct {
	Number  string `json:"number"  validate:"required,min=7,max=20"`
	NumType string `json:"numtype" validate:"omitempty,max=20"`
}

type CreateContactRequest struct {
	Name           string               `json:"name"        validate:"required,min=1,max=100"`
	Description    string               `json:"description" validate:"omitempty,max=500"`
	ContactNumbers []ContactNumberInput `json:"contact_numbers" validate:"omitempty,dive"`
}

type UpdateContactRequest struct {
	Name           *string               `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description    *string               `json:"description,omitempty" validate:"omitempty,max=500"`
	ContactNumbers *[]ContactNumberInput `json:"contact_numbers,omitempty" validate:"omitempty,dive"`
}

type ContactResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ContactNumbers []ContactNumber `json:"contact_numbers"`
}

type ContactListResponse struct {
	EmergencyContacts []ContactResponse `json:"emergency_contacts"`
}

func ToContactResponse(
	c *EmergencyContact,
	numbers []ContactNumber,
) ContactResponse {
	if numbers == nil {
		numbers = []ContactNumber{}
	}

	return ContactResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		ContactNumbers: numbers,
	}
}
