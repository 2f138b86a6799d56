package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

func recordMetaToResponse(meta entity.RecordMeta, patient *entity.User) dto.RecordMetaResponse {
	return dto.RecordMetaResponse{
		ID:        meta.ID,
		Patient:   UserToResponse(patient),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
		CreatedBy: meta.CreatedByID,
		UpdatedBy: meta.UpdatedByID,
	}
}

func MedicalHistoryToResponse(r *entity.MedicalHistory) *dto.MedicalHistoryResponse {
	if r == nil {
		return nil
	}
	return &dto.MedicalHistoryResponse{
		RecordMetaResponse: recordMetaToResponse(r.RecordMeta, r.Patient),
		Type:               r.Type,
		Description:        r.Description,
		HappenedAt:         r.HappenedAt,
	}
}

func VisitToResponse(r *entity.Visit) *dto.VisitResponse {
	if r == nil {
		return nil
	}
	return &dto.VisitResponse{
		RecordMetaResponse: recordMetaToResponse(r.RecordMeta, r.Patient),
		Purpose:            r.Purpose,
		VisitedAt:          r.VisitedAt,
	}
}

func PrescriptionToResponse(r *entity.Prescription) *dto.PrescriptionResponse {
	if r == nil {
		return nil
	}
	return &dto.PrescriptionResponse{
		RecordMetaResponse: recordMetaToResponse(r.RecordMeta, r.Patient),
		Medicine:           r.Medicine,
		Dose:               r.Dose,
		Frequency:          r.Frequency,
		Notes:              r.Notes,
	}
}

func AllergyToResponse(r *entity.Allergy) *dto.AllergyResponse {
	if r == nil {
		return nil
	}
	return &dto.AllergyResponse{
		RecordMetaResponse: recordMetaToResponse(r.RecordMeta, r.Patient),
		Name:               r.Name,
		Description:        r.Description,
	}
}
