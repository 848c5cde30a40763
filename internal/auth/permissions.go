package auth

// Permission table. Argument order for every entry:
// admin, teacher, industrial tutor, student.

// Students
var (
	CanViewStudents   = permission("canViewStudents", true, true, true, false)
	CanCreateStudents = permission("canCreateStudents", true, true, false, false)
	CanEditStudents   = permission("canEditStudents", true, true, false, false)
	CanDeleteStudents = permission("canDeleteStudents", true, false, false, false)
	CanExportStudents = permission("canExportStudents", true, true, false, false)
)

// Companies
var (
	CanViewCompanies   = permission("canViewCompanies", true, true, true, true)
	CanCreateCompanies = permission("canCreateCompanies", true, false, false, false)
	CanEditCompanies   = permission("canEditCompanies", true, false, false, false)
	CanDeleteCompanies = permission("canDeleteCompanies", true, false, false, false)
)

// Internships
var (
	CanViewInternships    = permission("canViewInternships", true, true, true, true)
	CanCreateInternships  = permission("canCreateInternships", true, true, false, false)
	CanEditInternships    = permission("canEditInternships", true, true, true, false)
	CanDeleteInternships  = permission("canDeleteInternships", true, false, false, false)
	CanApproveInternships = permission("canApproveInternships", true, true, false, false)
	CanApplyToInternships = permission("canApplyToInternships", false, false, false, true)
)

// Documents
var (
	CanViewDocuments     = permission("canViewDocuments", true, true, true, true)
	CanUploadDocuments   = permission("canUploadDocuments", true, true, true, true)
	CanDeleteDocuments   = permission("canDeleteDocuments", true, true, false, false)
	CanValidateDocuments = permission("canValidateDocuments", true, true, false, false)
	CanUseDocumentTools  = permission("canUseDocumentTools", true, true, true, true)
)

// Academic staff
var (
	CanViewTeachers      = permission("canViewTeachers", true, true, false, true)
	CanManageTeachers    = permission("canManageTeachers", true, false, false, false)
	CanAssignSupervisors = permission("canAssignSupervisors", true, true, false, false)
)

// System administration
var (
	CanManageUsers    = permission("canManageUsers", true, false, false, false)
	CanManageRoles    = permission("canManageRoles", true, false, false, false)
	CanViewSystemLogs = permission("canViewSystemLogs", true, false, false, false)
	CanManageSettings = permission("canManageSettings", true, false, false, false)
)

// Profiles
var (
	CanViewOwnProfile    = permission("canViewOwnProfile", true, true, true, true)
	CanEditOwnProfile    = permission("canEditOwnProfile", true, true, true, true)
	CanViewOtherProfiles = permission("canViewOtherProfiles", true, true, true, false)
)

// Reports
var (
	CanViewReports     = permission("canViewReports", true, true, true, false)
	CanGenerateReports = permission("canGenerateReports", true, true, false, false)
	CanExportReports   = permission("canExportReports", true, true, false, false)
	CanViewStatistics  = permission("canViewStatistics", true, true, true, true)
)

// Evaluations
var (
	CanViewEvaluations      = permission("canViewEvaluations", true, true, true, true)
	CanCreateEvaluations    = permission("canCreateEvaluations", true, true, true, false)
	CanEditEvaluations      = permission("canEditEvaluations", true, true, true, false)
	CanSubmitSelfEvaluation = permission("canSubmitSelfEvaluation", false, false, false, true)
)

// Quick actions
var (
	CanQuickAddStudent     = permission("canQuickAddStudent", true, true, false, false)
	CanQuickAddCompany     = permission("canQuickAddCompany", true, false, false, false)
	CanQuickAddInternship  = permission("canQuickAddInternship", true, true, false, false)
	CanQuickUploadDocument = permission("canQuickUploadDocument", true, true, true, true)
)

var allPermissions = []Permission{
	CanViewStudents, CanCreateStudents, CanEditStudents, CanDeleteStudents, CanExportStudents,
	CanViewCompanies, CanCreateCompanies, CanEditCompanies, CanDeleteCompanies,
	CanViewInternships, CanCreateInternships, CanEditInternships, CanDeleteInternships,
	CanApproveInternships, CanApplyToInternships,
	CanViewDocuments, CanUploadDocuments, CanDeleteDocuments, CanValidateDocuments, CanUseDocumentTools,
	CanViewTeachers, CanManageTeachers, CanAssignSupervisors,
	CanManageUsers, CanManageRoles, CanViewSystemLogs, CanManageSettings,
	CanViewOwnProfile, CanEditOwnProfile, CanViewOtherProfiles,
	CanViewReports, CanGenerateReports, CanExportReports, CanViewStatistics,
	CanViewEvaluations, CanCreateEvaluations, CanEditEvaluations, CanSubmitSelfEvaluation,
	CanQuickAddStudent, CanQuickAddCompany, CanQuickAddInternship, CanQuickUploadDocument,
}

// Permissions returns every defined permission in table order.
func Permissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// GrantedTo returns the names of the permissions role holds, in table order.
func GrantedTo(role Role) []string {
	names := make([]string, 0, len(allPermissions))
	for _, p := range allPermissions {
		if Allows(p, role) {
			names = append(names, p.name)
		}
	}
	return names
}
