package handler

import (
	"fmt"
	"text/tabwriter"

	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/model"
	"github.com/mmeshcher/antrian-client/internal/money"
)

func (h *Handler) table() *tabwriter.Writer {
	return tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
}

func (h *Handler) printCustomers(items []model.Customer) error {
	if len(items) == 0 {
		return h.println("No customers")
	}

	tw := h.table()
	fmt.Fprintln(tw, "ID\tNAME\tBALANCE")
	for _, c := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, money.Format(c.Balance))
	}
	return tw.Flush()
}

func (h *Handler) printProducts(items []model.Product) error {
	if len(items) == 0 {
		return h.println("No products")
	}

	tw := h.table()
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, money.Format(p.Price))
	}
	return tw.Flush()
}

func (h *Handler) printQueues(items []model.Queue) error {
	if len(items) == 0 {
		return h.println("No queues")
	}

	tw := h.table()
	fmt.Fprintln(tw, "ID\tCUSTOMER\tITEMS\tSTATUS\tTOTAL\tNOTE")
	for _, q := range items {
		customer := fmt.Sprintf("#%d", q.CustomerID)
		if q.Customer != nil {
			customer = q.Customer.Name
		}
		note := ""
		if q.Note != nil {
			note = *q.Note
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\n", q.ID, customer, len(q.Items), q.StatusID, money.Format(q.Total), note)
	}
	return tw.Flush()
}

func (h *Handler) printDraft(s builder.Snapshot) error {
	tw := h.table()
	if s.Customer != nil {
		fmt.Fprintf(tw, "Customer:\t%s\n", s.Customer.Name)
	}
	fmt.Fprintln(tw, "PRODUCT\tQTY\tPRICE\tDISCOUNT\tTOTAL")
	for _, l := range s.Lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			l.Product.Name, l.Quantity, money.Format(l.Product.Price), money.Format(l.Discount), money.Format(l.TotalPrice))
	}
	fmt.Fprintf(tw, "\t\t\t%s\t%s\n", money.Format(s.TotalDiscount), money.Format(s.GrandTotal))
	return tw.Flush()
}

func (h *Handler) printSummary(s model.Summary) error {
	tw := h.table()
	fmt.Fprintf(tw, "Customers:\t%d\n", s.Customers)
	fmt.Fprintf(tw, "Products:\t%d\n", s.Products)
	fmt.Fprintf(tw, "Queues:\t%d\n", s.Queues)
	fmt.Fprintf(tw, "Customer balance:\t%s\n", money.Format(s.TotalBalance))
	fmt.Fprintf(tw, "Revenue:\t%s\n", money.Format(s.Revenue))
	return tw.Flush()
}
