package dto

import "github.com/playabrava/gestor-camping/internal/domain/entity"

// IncidentFromEntity mapea la entidad a su representación JSON.
func IncidentFromEntity(inc *entity.Incident) IncidentResponse {
	out := IncidentResponse{
		ID:                 inc.ID,
		Title:              inc.Title,
		Description:        inc.Description,
		Location:           inc.Location,
		Priority:           string(inc.Priority),
		PriorityLabel:      inc.Priority.Label(),
		Status:             string(inc.Status),
		StatusLabel:        inc.Status.Label(),
		Category:           string(inc.Category),
		CategoryLabel:      inc.Category.Label(),
		CreatedAt:          inc.CreatedAt,
		UpdatedAt:          inc.UpdatedAt,
		Reporter:           inc.Reporter,
		ReporterDepartment: string(inc.ReporterDepartment),
		Comments:           make([]CommentDTO, 0, len(inc.Comments)),
		StatusHistory:      make([]StatusHistoryDTO, 0, len(inc.StatusHistory)),
	}
	for _, c := range inc.Comments {
		out.Comments = append(out.Comments, CommentDTO{
			ID: c.ID, Author: c.Author, Text: c.Text, Timestamp: c.Timestamp, IsAIGenerated: c.IsAIGenerated,
		})
	}
	for _, h := range inc.StatusHistory {
		out.StatusHistory = append(out.StatusHistory, StatusHistoryDTO{
			ID:             h.ID,
			PreviousStatus: string(h.PreviousStatus),
			NewStatus:      string(h.NewStatus),
			ChangedBy:      h.ChangedBy,
			Timestamp:      h.Timestamp,
		})
	}
	if inc.AIAnalysis != nil {
		out.AIAnalysis = &AIAnalysisDTO{
			Summary:        inc.AIAnalysis.Summary,
			SuggestedSteps: append([]string(nil), inc.AIAnalysis.SuggestedSteps...),
		}
	}
	return out
}

// IncidentsFromEntities listado en el mismo orden, recortado a la página pedida.
func IncidentsFromEntities(list []*entity.Incident, page PageRequest) IncidentListResponse {
	total := len(list)
	list = Paginate(list, page)
	items := make([]IncidentResponse, 0, len(list))
	for _, inc := range list {
		items = append(items, IncidentFromEntity(inc))
	}
	return IncidentListResponse{
		Items: items,
		Total: total,
		Page:  PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

// UserFromEntity nunca incluye el hash de la contraseña.
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		Name:            u.Name,
		Email:           u.Email,
		Department:      string(u.Department),
		DepartmentLabel: u.Department.Label(),
		Role:            string(u.Role),
		SuperAdmin:      u.IsSuperAdmin(),
	}
}
