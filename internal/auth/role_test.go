package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/internship-management/internal/auth"
)

var _ = Describe("Role", func() {
	Describe("Outranks", func() {
		It("is irreflexive", func() {
			for _, role := range auth.Roles() {
				Expect(auth.Outranks(role, role)).To(BeFalse(), string(role))
			}
		})

		It("follows admin > teacher > industrial_tutor > student", func() {
			roles := auth.Roles()
			for i, higher := range roles {
				for j, lower := range roles {
					Expect(auth.Outranks(higher, lower)).To(Equal(i < j), "%s vs %s", higher, lower)
				}
			}
		})

		It("is false whenever a role is unknown", func() {
			Expect(auth.Outranks(auth.Role("root"), auth.RoleStudent)).To(BeFalse())
			Expect(auth.Outranks(auth.RoleAdmin, auth.Role("root"))).To(BeFalse())
		})
	})

	It("ranks the closed set from 4 down to 1", func() {
		Expect(auth.RoleAdmin.Rank()).To(Equal(4))
		Expect(auth.RoleTeacher.Rank()).To(Equal(3))
		Expect(auth.RoleIndustrialTutor.Rank()).To(Equal(2))
		Expect(auth.RoleStudent.Rank()).To(Equal(1))
		Expect(auth.Role("other").Rank()).To(Equal(0))
	})

	DescribeTable("ParseRole",
		func(input string, expected auth.Role, ok bool) {
			role, valid := auth.ParseRole(input)
			Expect(valid).To(Equal(ok))
			if ok {
				Expect(role).To(Equal(expected))
			}
		},
		Entry("admin", "admin", auth.RoleAdmin, true),
		Entry("mixed case with spaces", "  Industrial_Tutor ", auth.RoleIndustrialTutor, true),
		Entry("unknown", "manager", auth.Role(""), false),
		Entry("empty", "", auth.Role(""), false),
	)
})

var _ = Describe("Data scope", func() {
	DescribeTable("ScopeFor",
		func(role auth.Role, expected auth.DataScope) {
			Expect(auth.ScopeFor(role)).To(Equal(expected))
		},
		Entry("admin sees all", auth.RoleAdmin, auth.ScopeAll),
		Entry("teacher sees a department", auth.RoleTeacher, auth.ScopeDepartment),
		Entry("tutor sees a company", auth.RoleIndustrialTutor, auth.ScopeCompany),
		Entry("student sees self", auth.RoleStudent, auth.ScopeSelf),
		Entry("unknown sees none", auth.Role("visitor"), auth.ScopeNone),
	)

	It("binds principal attributes", func() {
		teacher := &auth.Principal{ID: 2, Role: auth.RoleTeacher, Department: "Informatics"}
		Expect(teacher.Scope()).To(Equal(auth.Scope{Kind: auth.ScopeDepartment, Department: "Informatics"}))

		tutor := &auth.Principal{ID: 3, Role: auth.RoleIndustrialTutor, CompanyID: int64Ptr(9)}
		Expect(tutor.Scope()).To(Equal(auth.Scope{Kind: auth.ScopeCompany, CompanyID: 9}))

		student := &auth.Principal{ID: 4, Role: auth.RoleStudent}
		Expect(student.Scope()).To(Equal(auth.Scope{Kind: auth.ScopeSelf, UserID: 4}))
	})

	It("treats a scope without its attribute as empty", func() {
		Expect(auth.Scope{Kind: auth.ScopeAll}.Empty()).To(BeFalse())
		Expect(auth.Scope{Kind: auth.ScopeDepartment}.Empty()).To(BeTrue())
		Expect(auth.Scope{Kind: auth.ScopeCompany}.Empty()).To(BeTrue())
		Expect(auth.Scope{Kind: auth.ScopeSelf, UserID: 1}.Empty()).To(BeFalse())
		Expect(auth.Scope{Kind: auth.ScopeNone}.Empty()).To(BeTrue())
	})

	It("converts only active accounts with a known role", func() {
		_, ok := (&auth.Account{ID: 1, Role: auth.RoleAdmin, IsActive: false}).ToPrincipal()
		Expect(ok).To(BeFalse())

		_, ok = (&auth.Account{ID: 1, Role: auth.Role("ghost"), IsActive: true}).ToPrincipal()
		Expect(ok).To(BeFalse())

		p, ok := (&auth.Account{ID: 1, Email: "a@b.c", Role: auth.RoleAdmin, IsActive: true}).ToPrincipal()
		Expect(ok).To(BeTrue())
		Expect(p.Active).To(BeTrue())
		Expect(p.Can(auth.CanManageUsers)).To(BeTrue())
	})
})
