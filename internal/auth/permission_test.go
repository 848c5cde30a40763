package auth_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal/auth"
)

var _ = Describe("Permission table", func() {
	It("defines every permission for every role", func() {
		for _, p := range auth.Permissions() {
			for _, role := range auth.Roles() {
				Expect(func() { auth.Allows(p, role) }).NotTo(Panic(), "%s for %s", p, role)
			}
		}
	})

	It("gives every permission a unique name", func() {
		seen := map[string]bool{}
		for _, p := range auth.Permissions() {
			Expect(p.Name()).To(HavePrefix("can"))
			Expect(seen).NotTo(HaveKey(p.Name()))
			seen[p.Name()] = true
		}
		Expect(seen).To(HaveLen(len(auth.Permissions())))
	})

	It("grants every permission to at least one role", func() {
		for _, p := range auth.Permissions() {
			Expect(auth.AnyOf(auth.RoleAdmin, p) || auth.AnyOf(auth.RoleStudent, p)).To(BeTrue(), p.Name())
		}
	})

	DescribeTable("scenarios",
		func(perm auth.Permission, role auth.Role, expected bool) {
			Expect(auth.Allows(perm, role)).To(Equal(expected))
		},
		Entry("student cannot delete students", auth.CanDeleteStudents, auth.RoleStudent, false),
		Entry("admin can delete students", auth.CanDeleteStudents, auth.RoleAdmin, true),
		Entry("teacher cannot create companies", auth.CanCreateCompanies, auth.RoleTeacher, false),
		Entry("teacher can view companies", auth.CanViewCompanies, auth.RoleTeacher, true),
		Entry("only admin creates companies", auth.CanCreateCompanies, auth.RoleAdmin, true),
		Entry("tutor cannot approve internships", auth.CanApproveInternships, auth.RoleIndustrialTutor, false),
		Entry("teacher approves internships", auth.CanApproveInternships, auth.RoleTeacher, true),
		Entry("student applies to internships", auth.CanApplyToInternships, auth.RoleStudent, true),
		Entry("admin does not apply to internships", auth.CanApplyToInternships, auth.RoleAdmin, false),
		Entry("student submits a self evaluation", auth.CanSubmitSelfEvaluation, auth.RoleStudent, true),
		Entry("student cannot view other profiles", auth.CanViewOtherProfiles, auth.RoleStudent, false),
		Entry("only admin manages users", auth.CanManageUsers, auth.RoleTeacher, false),
	)

	It("denies unknown roles everything", func() {
		for _, p := range auth.Permissions() {
			Expect(auth.Allows(p, auth.Role("superuser"))).To(BeFalse())
			Expect(auth.Allows(p, auth.Role(""))).To(BeFalse())
		}
	})

	It("denies the zero permission", func() {
		for _, role := range auth.Roles() {
			Expect(auth.Allows(auth.Permission{}, role)).To(BeFalse())
		}
	})

	Describe("composites", func() {
		It("AnyOf allows when one permission allows", func() {
			Expect(auth.AnyOf(auth.RoleTeacher, auth.CanCreateCompanies, auth.CanViewCompanies)).To(BeTrue())
			Expect(auth.AnyOf(auth.RoleStudent, auth.CanCreateCompanies, auth.CanDeleteStudents)).To(BeFalse())
		})

		It("AllOf requires every permission", func() {
			Expect(auth.AllOf(auth.RoleAdmin, auth.CanCreateCompanies, auth.CanViewCompanies)).To(BeTrue())
			Expect(auth.AllOf(auth.RoleTeacher, auth.CanCreateCompanies, auth.CanViewCompanies)).To(BeFalse())
		})

		It("grants nothing for an empty list", func() {
			Expect(auth.AnyOf(auth.RoleAdmin)).To(BeFalse())
			Expect(auth.AllOf(auth.RoleAdmin)).To(BeFalse())
		})
	})

	Describe("GrantedTo", func() {
		It("matches Allows for every role", func() {
			for _, role := range auth.Roles() {
				granted := auth.GrantedTo(role)
				for _, p := range auth.Permissions() {
					if auth.Allows(p, role) {
						Expect(granted).To(ContainElement(p.Name()))
					} else {
						Expect(granted).NotTo(ContainElement(p.Name()))
					}
				}
			}
		})

		It("returns nothing for an unknown role", func() {
			Expect(auth.GrantedTo(auth.Role("guest"))).To(BeEmpty())
		})

		It("gives admin every system permission", func() {
			names := strings.Join(auth.GrantedTo(auth.RoleAdmin), ",")
			Expect(names).To(ContainSubstring("canManageUsers"))
			Expect(names).To(ContainSubstring("canManageRoles"))
		})
	})
})
