package workflow

import (
	"fmt"
	"sort"

	domainCollateral "coop-loan-backend/internal/domain/collateral"
	domainProject "coop-loan-backend/internal/domain/project"
)

// checkAmounts rejects figures that are not decimal numbers. Blank is allowed.
func checkAmounts(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := domainProject.ParseAmount(fields[name]); err != nil {
			return fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, name, fields[name])
		}
	}
	return nil
}

func validateCollateral(in CollateralInput) error {
	if in.Basic != nil {
		if err := checkAmounts(map[string]string{
			"monthly_saving": in.Basic.MonthlySaving,
			"child_saving":   in.Basic.ChildSaving,
			"total_saving":   in.Basic.TotalSaving,
			"share_amount":   in.Basic.ShareAmount,
		}); err != nil {
			return err
		}
	}
	for i, ie := range in.IncomeExpenses {
		if ie.Type != domainCollateral.TypeIncome && ie.Type != domainCollateral.TypeExpense {
			return fmt.Errorf("%w: income_expenses[%d]: type must be income or expense", ErrInvalidInput, i)
		}
		if err := checkAmounts(map[string]string{"amount": ie.Amount}); err != nil {
			return err
		}
	}
	return nil
}

func toProperties(number string, in []PropertyInput) []domainCollateral.Property {
	out := make([]domainCollateral.Property, 0, len(in))
	for _, p := range in {
		out = append(out, domainCollateral.Property{
			MemberNumber:                 number,
			OwnerName:                    p.OwnerName,
			FatherOrSpouseName:           p.FatherOrSpouseName,
			GrandfatherOrFatherInlawName: p.GrandfatherOrFatherInlawName,
			District:                     p.District,
			MunicipalityVDC:              p.MunicipalityVDC,
			SheetNo:                      p.SheetNo,
			WardNo:                       p.WardNo,
			PlotNo:                       p.PlotNo,
			Area:                         p.Area,
			LandType:                     p.LandType,
		})
	}
	return out
}

func toFamily(number string, in []FamilyInput) []domainCollateral.FamilyMember {
	out := make([]domainCollateral.FamilyMember, 0, len(in))
	for _, f := range in {
		out = append(out, domainCollateral.FamilyMember{
			MemberNumber:      number,
			Name:              f.Name,
			Age:               f.Age,
			Relation:          f.Relation,
			MemberOfOtherCoop: f.MemberOfOtherCoop,
			Occupation:        f.Occupation,
			MonthlyIncome:     f.MonthlyIncome,
		})
	}
	return out
}

func toIncomeExpenses(number string, in []IncomeExpenseInput) []domainCollateral.IncomeExpense {
	out := make([]domainCollateral.IncomeExpense, 0, len(in))
	for _, ie := range in {
		out = append(out, domainCollateral.IncomeExpense{
			MemberNumber: number,
			Field:        ie.Field,
			Amount:       ie.Amount,
			Type:         ie.Type,
		})
	}
	return out
}

func toAffiliations(number string, in []AffiliationInput) []domainCollateral.Affiliation {
	out := make([]domainCollateral.Affiliation, 0, len(in))
	for _, a := range in {
		out = append(out, domainCollateral.Affiliation{
			MemberNumber:         number,
			Institution:          a.Institution,
			AddressOfInstitution: a.AddressOfInstitution,
			Position:             a.Position,
			EstimatedIncome:      a.EstimatedIncome,
			Remarks:              a.Remarks,
		})
	}
	return out
}
